package swifttoo

import (
	"testing"
	"time"
)

func obsEntry(targetID, seg int, begin string, exposure, slew float64) ObsEntry {
	parsed, _ := ParseTime(begin)
	return ObsEntry{
		Begin:    Time{Time: parsed},
		End:      Time{Time: parsed.Add(20 * time.Minute)},
		TargetID: targetID,
		Segment:  seg,
		Exposure: exposure,
		SlewTime: slew,
	}
}

func TestObsNumFormat(t *testing.T) {
	entry := ObsEntry{TargetID: 30501, Segment: 12}
	if got := entry.ObsNum(); got != "00030501012" {
		t.Fatalf("expected 00030501012, got %q", got)
	}
}

func TestGroupObservations(t *testing.T) {
	entries := []ObsEntry{
		obsEntry(30501, 1, "2026-02-10 01:00:00", 1100, 110),
		obsEntry(30501, 1, "2026-02-10 02:35:00", 900, 95),
		obsEntry(42424, 2, "2026-02-10 02:00:00", 500, 80),
	}

	observations := groupObservations(entries)
	if len(observations) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(observations))
	}

	first := observations[0]
	if first.ObsNum != "00030501001" {
		t.Fatalf("expected first observation 00030501001, got %q", first.ObsNum)
	}
	if first.Exposure != 2000 {
		t.Fatalf("expected summed exposure 2000, got %g", first.Exposure)
	}
	if first.SlewTime != 205 {
		t.Fatalf("expected summed slew 205, got %g", first.SlewTime)
	}
	if first.Pointings != 2 {
		t.Fatalf("expected 2 pointings, got %d", first.Pointings)
	}

	wantEnd := mustParse(t, "2026-02-10 02:55:00")
	if !first.End.Equal(wantEnd) {
		t.Fatalf("expected span end %v, got %v", wantEnd, first.End.Time)
	}
}

func TestGroupObservationsEmpty(t *testing.T) {
	if got := groupObservations(nil); len(got) != 0 {
		t.Fatalf("expected empty rollup, got %d", len(got))
	}
}
