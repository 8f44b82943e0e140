package mailstore

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap"

	"mail-digest/internal/models"
)

func messageWithBody(t *testing.T, raw string) *imap.Message {
	t.Helper()
	// A real fetch stores the literal under the response-shaped section
	// name, which carries no peek marker even when the request peeked.
	return &imap.Message{
		SeqNum: 1,
		Body: map[*imap.BodySectionName]imap.Literal{
			{}: bytes.NewBufferString(raw),
		},
	}
}

func TestParseItemPlainOnly(t *testing.T) {
	raw := "From: Alice <alice@example.com>\r\n" +
		"To: bob@example.com\r\n" +
		"Subject: Plain message\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Just plain text.\r\n"

	section := &imap.BodySectionName{Peek: true}
	msg := messageWithBody(t, raw)
	msg.InternalDate = time.Date(2025, time.April, 4, 9, 0, 0, 0, time.UTC)
	msg.Envelope = &imap.Envelope{
		Subject: "Plain message",
		From: []*imap.Address{
			{PersonalName: "Alice", MailboxName: "alice", HostName: "example.com"},
		},
	}

	// The peeked request must still find the body stored under the
	// response-shaped name.
	item := parseItem(msg, section)

	if item.TypeTag != models.MailMessageTag {
		t.Errorf("TypeTag = %d, want the mail-message tag", item.TypeTag)
	}
	if item.SenderName != "Alice" {
		t.Errorf("SenderName = %q, want \"Alice\"", item.SenderName)
	}
	if item.Subject != "Plain message" {
		t.Errorf("Subject = %q", item.Subject)
	}
	if !strings.Contains(item.BodyPlain, "Just plain text.") {
		t.Errorf("BodyPlain = %q, want the text body", item.BodyPlain)
	}
	if item.BodyHTML != "" {
		t.Errorf("BodyHTML = %q, want empty", item.BodyHTML)
	}
	if item.Format != models.FormatPlain {
		t.Errorf("Format = %d, want FormatPlain", item.Format)
	}
	if item.Received.Kind != models.ReceivedInstant {
		t.Fatalf("Received.Kind = %d, want ReceivedInstant", item.Received.Kind)
	}
	if !item.Received.Instant.Equal(msg.InternalDate) {
		t.Errorf("Received.Instant = %v, want the internal date", item.Received.Instant)
	}
}

func TestParseItemMultipartAlternative(t *testing.T) {
	raw := "From: carol@example.com\r\n" +
		"Subject: Both kinds\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: multipart/alternative; boundary=\"frontier\"\r\n" +
		"\r\n" +
		"--frontier\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"plain variant\r\n" +
		"--frontier\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>html variant</p>\r\n" +
		"--frontier--\r\n"

	section := &imap.BodySectionName{Peek: true}
	msg := messageWithBody(t, raw)

	item := parseItem(msg, section)

	if !strings.Contains(item.BodyPlain, "plain variant") {
		t.Errorf("BodyPlain = %q", item.BodyPlain)
	}
	if !strings.Contains(item.BodyHTML, "<p>html variant</p>") {
		t.Errorf("BodyHTML = %q", item.BodyHTML)
	}
	if item.Format != models.FormatHTML {
		t.Errorf("Format = %d, want FormatHTML when an HTML part exists", item.Format)
	}
}

func TestParseItemNoBody(t *testing.T) {
	section := &imap.BodySectionName{Peek: true}
	msg := &imap.Message{
		SeqNum:   1,
		Envelope: &imap.Envelope{Subject: "Headers only"},
	}

	item := parseItem(msg, section)

	if item.BodyPlain != "" || item.BodyHTML != "" {
		t.Errorf("expected empty bodies, got plain=%q html=%q", item.BodyPlain, item.BodyHTML)
	}
	if item.Subject != "Headers only" {
		t.Errorf("Subject = %q", item.Subject)
	}
	if item.Received.Kind != models.ReceivedUnknown {
		t.Errorf("Received.Kind = %d, want ReceivedUnknown without any date", item.Received.Kind)
	}
}

func TestReceivedOfEnvelopeFallback(t *testing.T) {
	envDate := time.Date(2025, time.April, 3, 18, 0, 0, 0, time.UTC)
	msg := &imap.Message{Envelope: &imap.Envelope{Date: envDate}}

	raw := receivedOf(msg)
	if raw.Kind != models.ReceivedInstant {
		t.Fatalf("Kind = %d, want ReceivedInstant", raw.Kind)
	}
	if !raw.Instant.Equal(envDate) {
		t.Errorf("Instant = %v, want the envelope date", raw.Instant)
	}
}

func TestSenderOf(t *testing.T) {
	tests := []struct {
		name     string
		from     []*imap.Address
		expected string
	}{
		{
			name:     "Display name",
			from:     []*imap.Address{{PersonalName: "Alice", MailboxName: "alice", HostName: "example.com"}},
			expected: "Alice",
		},
		{
			name:     "Encoded display name",
			from:     []*imap.Address{{PersonalName: "=?ISO-8859-1?Q?Caf=E9?=", MailboxName: "cafe", HostName: "example.com"}},
			expected: "Café",
		},
		{
			name:     "Address fallback",
			from:     []*imap.Address{{MailboxName: "bob", HostName: "example.com"}},
			expected: "bob@example.com",
		},
		{
			name:     "No usable sender",
			from:     []*imap.Address{{}},
			expected: "",
		},
		{
			name:     "Empty list",
			from:     nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := senderOf(&imap.Envelope{From: tt.from})
			if got != tt.expected {
				t.Errorf("senderOf() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "Plain ASCII",
			input:    "Hello World",
			expected: "Hello World",
		},
		{
			name:     "UTF-8 encoded",
			input:    "=?UTF-8?Q?Important_:_comment_mettre_=C3=A0_jour?=",
			expected: "Important : comment mettre à jour",
		},
		{
			name:     "ISO-8859-1 encoded",
			input:    "=?ISO-8859-1?Q?Caf=E9?=",
			expected: "Café",
		},
		{
			name:     "Base64 encoded",
			input:    "=?UTF-8?B?SGVsbG8gV29ybGQ=?=",
			expected: "Hello World",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeHeader(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("decodeHeader() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.expected {
				t.Errorf("decodeHeader() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSegmentNames(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		delim    string
		expected []string
	}{
		{
			name:     "Single segment",
			path:     "Archive",
			delim:    "/",
			expected: []string{"Archive"},
		},
		{
			name:     "Nested with slash delimiter",
			path:     "Work/Clients/Acme",
			delim:    "/",
			expected: []string{"Work", "Work/Clients", "Work/Clients/Acme"},
		},
		{
			name:     "Nested with dot delimiter",
			path:     "Work/Clients",
			delim:    ".",
			expected: []string{"Work", "Work.Clients"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := segmentNames(tt.path, tt.delim)
			if len(got) != len(tt.expected) {
				t.Fatalf("segmentNames() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("segmentNames()[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}
