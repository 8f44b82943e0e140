package bodytext

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"mail-digest/internal/models"
)

// Extract returns the item's body text and whether any content could be
// retrieved. The plain-text body wins when present; an HTML body is converted
// to readable text as a fallback. Whitespace-only content and conversion
// failures count as empty at each step, so the chain continues rather than
// erroring out.
func Extract(item *models.MailItem) (string, bool) {
	if body := strings.TrimSpace(item.BodyPlain); body != "" {
		return body, true
	}

	if html := strings.TrimSpace(item.BodyHTML); html != "" {
		text, err := htmltomarkdown.ConvertString(html)
		if err == nil {
			if body := strings.TrimSpace(text); body != "" {
				return body, true
			}
		}
	}

	return "", false
}
