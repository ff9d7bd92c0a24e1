package swifttoo

import (
	"fmt"
	"strings"
	"time"
)

// metEpoch is the zero point of Swift Mission Elapsed Time.
var metEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// apiTimeLayout is how the API writes timestamps.
const apiTimeLayout = "2006-01-02 15:04:05"

var parseLayouts = []string{
	apiTimeLayout,
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseTime accepts the timestamp forms the API and its users exchange:
// "2006-01-02 15:04:05", date only, and ISO 8601 with or without a zone.
// Naive timestamps are taken as UTC.
func ParseTime(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", trimmed)
}

// Time is a timestamp that decodes from the API's flexible formats.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(apiTimeLayout) + `"`), nil
}

// MET converts a UTC time to Mission Elapsed Time seconds, applying the UTCF
// correction when supplied.
func MET(t time.Time, utcf float64) float64 {
	return t.UTC().Sub(metEpoch).Seconds() - utcf
}

// METTime converts Mission Elapsed Time seconds back to UTC, applying the
// UTCF correction when supplied.
func METTime(met, utcf float64) time.Time {
	return metEpoch.Add(time.Duration((met + utcf) * float64(time.Second)))
}

func formatQueryTime(t time.Time) string {
	return t.UTC().Format(apiTimeLayout)
}
