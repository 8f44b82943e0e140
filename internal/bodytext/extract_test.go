package bodytext

import (
	"strings"
	"testing"

	"mail-digest/internal/models"
)

func TestExtractPlainWins(t *testing.T) {
	item := &models.MailItem{
		BodyPlain: "  plain content  ",
		BodyHTML:  "<p>html content</p>",
	}

	body, ok := Extract(item)
	if !ok {
		t.Fatal("Extract() reported no body")
	}
	if body != "plain content" {
		t.Errorf("Extract() = %q, want the trimmed plain body", body)
	}
}

func TestExtractHTMLFallback(t *testing.T) {
	item := &models.MailItem{
		BodyPlain: "   \n\t ",
		BodyHTML:  "<html><body><p>Hello from HTML</p></body></html>",
		Format:    models.FormatHTML,
	}

	body, ok := Extract(item)
	if !ok {
		t.Fatal("Extract() reported no body")
	}
	if !strings.Contains(body, "Hello from HTML") {
		t.Errorf("Extract() = %q, want the rendered HTML text", body)
	}
	if strings.Contains(body, "<p>") {
		t.Errorf("Extract() = %q, still contains markup", body)
	}
	if body != strings.TrimSpace(body) {
		t.Errorf("Extract() = %q, want trimmed output", body)
	}
}

func TestExtractAbsent(t *testing.T) {
	tests := []struct {
		name string
		item models.MailItem
	}{
		{name: "Both empty", item: models.MailItem{}},
		{name: "Whitespace only", item: models.MailItem{BodyPlain: "  ", BodyHTML: "\n\t"}},
		{name: "HTML renders to nothing", item: models.MailItem{BodyHTML: "<div>   </div>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ok := Extract(&tt.item)
			if ok {
				t.Errorf("Extract() = %q, want absent", body)
			}
			if body != "" {
				t.Errorf("Extract() returned %q alongside absent", body)
			}
		})
	}
}
