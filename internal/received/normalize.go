package received

import (
	"fmt"
	"math"
	"time"

	"mail-digest/internal/models"
)

// serialEpoch anchors serial received-time values: a serial counts days since
// 1899-12-30 00:00:00 UTC, its fractional part encoding time-of-day.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// textLayouts are tried in order against text-shaped received times; the
// first successful parse wins. Parsed values are taken as wall-clock time in
// the operator's zone.
var textLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04:05 pm",
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC1123Z,
}

// Normalize converts a store-native received-time value into an instant
// expressed in loc. Every representational shape the store is known to use
// is handled explicitly; anything else gets a best-effort conversion and an
// error when that fails too.
func Normalize(raw models.ReceivedTime, loc *time.Location) (time.Time, error) {
	switch raw.Kind {
	case models.ReceivedInstant:
		// The store already supplied an instant; re-expressing it in loc
		// covers stores that tag it with the wrong zone.
		return raw.Instant.In(loc), nil
	case models.ReceivedDateOnly:
		return time.Date(raw.Year, raw.Month, raw.Day, 0, 0, 0, 0, loc), nil
	case models.ReceivedText:
		return parseText(raw.Text, loc)
	case models.ReceivedSerial:
		return fromSerial(raw.Serial).In(loc), nil
	case models.ReceivedUnknown:
		return fromUnknown(raw.Raw, loc)
	default:
		return time.Time{}, fmt.Errorf("unrecognized received-time kind %d", raw.Kind)
	}
}

// LocalDate reduces an instant to its calendar date, kept in the instant's
// own location. Used only for cutoff comparison; the full instant is what
// records carry.
func LocalDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func parseText(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range textLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable received time %q", s)
}

// fromSerial converts a fractional day count into a UTC instant. Whole days
// and the fractional remainder are added as separate Durations so the
// time-of-day stays second-accurate instead of drifting with a single float
// multiplication.
func fromSerial(days float64) time.Time {
	whole := math.Trunc(days)
	frac := days - whole
	d := time.Duration(whole)*24*time.Hour + time.Duration(math.Round(frac*86400))*time.Second
	return serialEpoch.Add(d)
}

func fromUnknown(v interface{}, loc *time.Location) (time.Time, error) {
	switch value := v.(type) {
	case time.Time:
		return value.In(loc), nil
	case string:
		return parseText(value, loc)
	case float64:
		return fromSerial(value).In(loc), nil
	case int:
		return fromSerial(float64(value)).In(loc), nil
	case int64:
		return fromSerial(float64(value)).In(loc), nil
	}
	return time.Time{}, fmt.Errorf("unsupported received-time value of type %T", v)
}
