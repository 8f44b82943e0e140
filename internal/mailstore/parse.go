package mailstore

import (
	"io"
	"mime"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-message/mail"

	// Register charset decoders (windows-1252, iso-8859-*, koi8-r, etc.)
	_ "github.com/emersion/go-message/charset"

	"mail-digest/internal/models"
)

// parseItem converts a fetched message into the store-neutral MailItem view.
// Field-level failures degrade to zero values rather than erroring: the
// scanner decides what is fatal for an item.
func parseItem(msg *imap.Message, section *imap.BodySectionName) models.MailItem {
	item := models.MailItem{
		TypeTag:  models.MailMessageTag,
		Received: receivedOf(msg),
	}

	if env := msg.Envelope; env != nil {
		item.SenderName = senderOf(env)
		if subject, err := decodeHeader(env.Subject); err == nil {
			item.Subject = subject
		} else {
			item.Subject = env.Subject
		}
	}

	r := msg.GetBody(section)
	if r == nil {
		return item
	}
	mr, err := mail.CreateReader(r)
	if err != nil {
		return item
	}

	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		} else if err != nil {
			break
		}

		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, err := h.ContentType()
		if err != nil {
			continue
		}
		if contentType != "text/plain" && contentType != "text/html" {
			continue
		}
		body, err := io.ReadAll(p.Body)
		if err != nil {
			continue
		}

		// First part of each kind wins; alternatives repeat the content.
		switch contentType {
		case "text/plain":
			if item.BodyPlain == "" {
				item.BodyPlain = string(body)
			}
		case "text/html":
			if item.BodyHTML == "" {
				item.BodyHTML = string(body)
			}
		}
	}

	switch {
	case item.BodyHTML != "":
		item.Format = models.FormatHTML
	case item.BodyPlain != "":
		item.Format = models.FormatPlain
	}

	return item
}

// receivedOf picks the best available received-time shape for a message.
// INTERNALDATE is authoritative when present; the envelope date is a weaker
// fallback. A message carrying neither is left for the normalizer's
// best-effort path.
func receivedOf(msg *imap.Message) models.ReceivedTime {
	if !msg.InternalDate.IsZero() {
		return models.InstantReceived(msg.InternalDate)
	}
	if env := msg.Envelope; env != nil && !env.Date.IsZero() {
		return models.InstantReceived(env.Date)
	}
	return models.UnknownReceived(nil)
}

// senderOf returns the first From address's display name, falling back to
// the bare address. Empty when the envelope has no usable sender.
func senderOf(env *imap.Envelope) string {
	for _, addr := range env.From {
		if addr == nil {
			continue
		}
		if decoded, err := decodeHeader(addr.PersonalName); err == nil {
			if name := strings.TrimSpace(decoded); name != "" {
				return name
			}
		}
		if addr.MailboxName != "" && addr.HostName != "" {
			return addr.Address()
		}
	}
	return ""
}

// decodeHeader decodes MIME-encoded headers (e.g., "=?UTF-8?B?...?=") to plain text
func decodeHeader(encoded string) (string, error) {
	decoder := new(mime.WordDecoder)
	decoded, err := decoder.DecodeHeader(encoded)
	if err != nil {
		return "", err
	}
	return decoded, nil
}
