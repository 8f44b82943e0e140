package digest

import (
	"fmt"
	"strings"

	"mail-digest/internal/models"
)

// EmptySentinel is emitted instead of an empty string when no records match.
const EmptySentinel = "No new emails found for today."

const receivedLayout = "2006-01-02 15:04:05"

// Format renders records into the delimited digest text, preserving input
// order (newest first). Records without a retrievable body render no Body
// section at all.
func Format(records []models.ExtractedRecord) string {
	if len(records) == 0 {
		return EmptySentinel
	}

	var b strings.Builder
	for _, record := range records {
		b.WriteString("--- Email Start ---\n")
		fmt.Fprintf(&b, "From: %s\n", record.Sender)
		fmt.Fprintf(&b, "Subject: %s\n", record.Subject)
		fmt.Fprintf(&b, "Received: %s\n", record.ReceivedAt.Format(receivedLayout))
		if record.HasBody {
			b.WriteString("\nBody:\n")
			b.WriteString(strings.TrimSpace(record.Body))
			b.WriteString("\n")
		}
		b.WriteString("--- Email End ---\n\n")
	}
	return b.String()
}
