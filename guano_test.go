package swifttoo

import (
	"testing"
	"time"
)

func TestGUANOEntryGTI(t *testing.T) {
	trigger := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	entry := GUANOEntry{
		TriggerTime: Time{Time: trigger},
		Offset:      -50,
		Duration:    200,
		QuadsAway:   4,
	}

	begin, end := entry.GTI()
	if !begin.Equal(trigger.Add(-50 * time.Second)) {
		t.Fatalf("expected GTI start 50 s before trigger, got %v", begin)
	}
	if !end.Equal(trigger.Add(150 * time.Second)) {
		t.Fatalf("expected GTI end 150 s after trigger, got %v", end)
	}
	if !entry.Executed() {
		t.Fatal("dump with quadrants away should count as executed")
	}

	missed := GUANOEntry{QuadsAway: 0}
	if missed.Executed() {
		t.Fatal("dump without quadrants away should not count as executed")
	}
}
