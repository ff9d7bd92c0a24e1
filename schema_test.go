package swifttoo

import (
	"math"
	"testing"
	"time"
)

func TestCoordsValidate(t *testing.T) {
	valid := []Coords{
		{RA: 0, Dec: 0},
		{RA: 359.999, Dec: 90},
		{RA: 83.633, Dec: -90},
	}
	for _, coords := range valid {
		if err := coords.Validate(); err != nil {
			t.Fatalf("expected %v to validate: %v", coords, err)
		}
	}

	invalid := []Coords{
		{RA: 360, Dec: 0},
		{RA: -0.1, Dec: 0},
		{RA: 10, Dec: 90.1},
		{RA: 10, Dec: -91},
	}
	for _, coords := range invalid {
		if err := coords.Validate(); err == nil {
			t.Fatalf("expected %v to fail validation", coords)
		}
	}
}

func TestDateRangeNormalize(t *testing.T) {
	begin := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	fromLength, err := DateRange{Begin: begin, Length: 5}.Normalize()
	if err != nil {
		t.Fatalf("begin+length: %v", err)
	}
	if !fromLength.End.Equal(end) {
		t.Fatalf("expected end %v, got %v", end, fromLength.End)
	}

	fromEnds, err := DateRange{Begin: begin, End: end}.Normalize()
	if err != nil {
		t.Fatalf("begin+end: %v", err)
	}
	if math.Abs(fromEnds.Length-5) > 1e-9 {
		t.Fatalf("expected length 5, got %g", fromEnds.Length)
	}

	fromEnd, err := DateRange{End: end, Length: 5}.Normalize()
	if err != nil {
		t.Fatalf("end+length: %v", err)
	}
	if !fromEnd.Begin.Equal(begin) {
		t.Fatalf("expected begin %v, got %v", begin, fromEnd.Begin)
	}

	if _, err := (DateRange{Begin: begin}).Normalize(); err == nil {
		t.Fatal("underdetermined range should fail")
	}
	if _, err := (DateRange{Begin: end, End: begin}).Normalize(); err == nil {
		t.Fatal("inverted range should fail")
	}
}
