package scanner

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"mail-digest/internal/bodytext"
	"mail-digest/internal/mailstore"
	"mail-digest/internal/models"
	"mail-digest/internal/received"
)

// DefaultWindowSize bounds how many of the newest items one scan inspects.
// Items past the window are unreachable even when they satisfy the cutoff;
// the bound keeps runtime predictable on large folders.
const DefaultWindowSize = 200

// skipReason classifies why an inspected item produced no record.
type skipReason int

const (
	keep skipReason = iota
	skipNotMail
	skipUnparseableDate
	skipBeforeCutoff
)

type Scanner struct {
	store       mailstore.Store
	location    *time.Location
	includeBody bool
	windowSize  int
	log         *logrus.Entry
}

// New creates a Scanner over the given store, taking the window size and body
// toggle from the configuration. Timestamps are normalized to the operator's
// local timezone.
func New(store mailstore.Store, cfg *models.Config, log *logrus.Entry) *Scanner {
	windowSize := cfg.Digest.WindowSize
	if windowSize < 1 {
		windowSize = DefaultWindowSize
	}
	return &Scanner{
		store:       store,
		location:    time.Local,
		includeBody: cfg.Digest.IncludeBody,
		windowSize:  windowSize,
		log:         log,
	}
}

// CutoffDate computes the earliest included local calendar date: daysBack of
// 1 means today only.
func CutoffDate(now time.Time, daysBack int, loc *time.Location) time.Time {
	return received.LocalDate(now.In(loc)).AddDate(0, 0, -(daysBack - 1))
}

// Scan walks the newest items of folder (bounded by the window size) and
// returns the records received on or after cutoff, in store order (newest
// first). Filtered-out items never stop the walk; the window bound is the
// only stopping condition. Per-item failures are logged and skipped, so a
// bad message never loses the rest of the scan.
func (s *Scanner) Scan(folder mailstore.Folder, cutoff time.Time) ([]models.ExtractedRecord, error) {
	items, err := s.store.ListRecent(folder, s.windowSize)
	if err != nil {
		return nil, err
	}

	var records []models.ExtractedRecord
	for i := range items {
		item := &items[i]
		record, reason, err := s.classify(item, cutoff)
		switch reason {
		case keep:
			records = append(records, record)
		case skipUnparseableDate:
			s.log.Warnf("Cannot determine received time for message %q, skipping: %v", item.Subject, err)
		case skipNotMail, skipBeforeCutoff:
			// Expected and frequent; not worth a log line.
		}
	}

	return records, nil
}

func (s *Scanner) classify(item *models.MailItem, cutoff time.Time) (models.ExtractedRecord, skipReason, error) {
	if item.TypeTag != models.MailMessageTag {
		return models.ExtractedRecord{}, skipNotMail, nil
	}

	receivedAt, err := received.Normalize(item.Received, s.location)
	if err != nil {
		return models.ExtractedRecord{}, skipUnparseableDate, err
	}

	if received.LocalDate(receivedAt).Before(cutoff) {
		return models.ExtractedRecord{}, skipBeforeCutoff, nil
	}

	record := models.ExtractedRecord{
		Sender:     strings.TrimSpace(item.SenderName),
		Subject:    item.Subject,
		ReceivedAt: receivedAt,
	}
	if record.Sender == "" {
		record.Sender = "unknown"
	}
	if s.includeBody {
		record.Body, record.HasBody = bodytext.Extract(item)
	}

	return record, keep, nil
}
