package swifttoo

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestParseTimeFormats(t *testing.T) {
	want := time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)
	cases := []string{
		"2026-03-01 12:30:45",
		"2026-03-01T12:30:45",
		"2026-03-01T12:30:45Z",
	}
	for _, raw := range cases {
		got, err := ParseTime(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parse %q: expected %v, got %v", raw, want, got)
		}
	}

	dateOnly, err := ParseTime("2026-03-01")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if !dateOnly.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date-only result %v", dateOnly)
	}

	if _, err := ParseTime("yesterday"); err == nil {
		t.Fatal("expected error for unparseable input")
	}
	if _, err := ParseTime("   "); err == nil {
		t.Fatal("expected error for blank input")
	}
}

func TestMETEpoch(t *testing.T) {
	if got := MET(time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC), 0); got != 0 {
		t.Fatalf("epoch should be MET 0, got %g", got)
	}
	if got := MET(time.Date(2001, 1, 2, 0, 0, 0, 0, time.UTC), 0); got != 86400 {
		t.Fatalf("one day should be 86400 s, got %g", got)
	}
}

func TestMETRoundTrip(t *testing.T) {
	moment := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	utcf := -29.5
	met := MET(moment, utcf)
	back := METTime(met, utcf)
	if math.Abs(back.Sub(moment).Seconds()) > 1e-6 {
		t.Fatalf("round trip drifted: %v vs %v", back, moment)
	}
}

func TestTimeJSON(t *testing.T) {
	var decoded struct {
		Begin Time `json:"begin"`
	}
	if err := json.Unmarshal([]byte(`{"begin":"2026-03-01 10:00:00"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if !decoded.Begin.Equal(want) {
		t.Fatalf("expected %v, got %v", want, decoded.Begin.Time)
	}

	encoded, err := json.Marshal(decoded)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != `{"begin":"2026-03-01 10:00:00"}` {
		t.Fatalf("unexpected encoding %s", encoded)
	}

	if err := json.Unmarshal([]byte(`{"begin":null}`), &decoded); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !decoded.Begin.IsZero() {
		t.Fatalf("null should decode to zero time, got %v", decoded.Begin.Time)
	}
}
