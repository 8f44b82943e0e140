package models

import "time"

// MailMessageTag is the class tag a mail store reports for a regular mail
// message. Items carrying any other tag (meeting requests, tasks, delivery
// reports) are not extracted.
const MailMessageTag = 43

// ReceivedKind discriminates the shapes a mail store may use to report an
// item's received time.
type ReceivedKind int

const (
	ReceivedUnknown ReceivedKind = iota
	ReceivedInstant
	ReceivedDateOnly
	ReceivedText
	ReceivedSerial
)

// ReceivedTime is a store-native received-time value, one variant per
// representational shape. Only the fields of the active Kind are meaningful.
type ReceivedTime struct {
	Kind ReceivedKind

	// ReceivedInstant
	Instant time.Time

	// ReceivedDateOnly
	Year  int
	Month time.Month
	Day   int

	// ReceivedText
	Text string

	// ReceivedSerial: days since 1899-12-30 00:00:00 UTC, the fractional
	// part encoding time-of-day
	Serial float64

	// ReceivedUnknown: whatever the store handed back
	Raw interface{}
}

func InstantReceived(t time.Time) ReceivedTime {
	return ReceivedTime{Kind: ReceivedInstant, Instant: t}
}

func DateOnlyReceived(year int, month time.Month, day int) ReceivedTime {
	return ReceivedTime{Kind: ReceivedDateOnly, Year: year, Month: month, Day: day}
}

func TextReceived(s string) ReceivedTime {
	return ReceivedTime{Kind: ReceivedText, Text: s}
}

func SerialReceived(days float64) ReceivedTime {
	return ReceivedTime{Kind: ReceivedSerial, Serial: days}
}

func UnknownReceived(v interface{}) ReceivedTime {
	return ReceivedTime{Kind: ReceivedUnknown, Raw: v}
}

// BodyFormat is the store's best-effort hint about how a message body was
// composed.
type BodyFormat int

const (
	FormatUnspecified BodyFormat = iota
	FormatPlain
	FormatHTML
	FormatRichText
)

// MailItem is the read-only view of one message as supplied by the mail
// store. Fields the store could not provide are left at their zero value.
type MailItem struct {
	SenderName string
	Subject    string
	Received   ReceivedTime
	BodyPlain  string
	BodyHTML   string
	Format     BodyFormat
	TypeTag    int
}

// ExtractedRecord is one message of the digest. HasBody distinguishes a
// retrieved (possibly short) body from content that could not be obtained;
// an absent body is never rendered as an empty string.
type ExtractedRecord struct {
	Sender     string
	Subject    string
	ReceivedAt time.Time
	Body       string
	HasBody    bool
}
