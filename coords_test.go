package swifttoo

import (
	"math"
	"testing"
)

func TestParseRA(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"83.633", 83.633},
		{"370", 10},
		{"-10", 350},
		{"05 34 31.94", 83.633083},
		{"05:34:31.94", 83.633083},
		{"12 30", 187.5},
	}
	for _, tc := range cases {
		got, err := ParseRA(tc.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if math.Abs(got-tc.want) > 1e-4 {
			t.Fatalf("parse %q: expected %g, got %g", tc.raw, tc.want, got)
		}
	}

	for _, bad := range []string{"", "1 2 3 4", "ab cd"} {
		if _, err := ParseRA(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseDec(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"22.0145", 22.0145},
		{"+22 00 52.2", 22.0145},
		{"-29 00 28.1", -29.007806},
		{"-00 30 00", -0.5},
	}
	for _, tc := range cases {
		got, err := ParseDec(tc.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if math.Abs(got-tc.want) > 1e-4 {
			t.Fatalf("parse %q: expected %g, got %g", tc.raw, tc.want, got)
		}
	}

	for _, bad := range []string{"", "95", "-91.5", "91 00 00"} {
		if _, err := ParseDec(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestGalacticToEquatorial(t *testing.T) {
	// The galactic center sits at roughly RA 266.405, Dec -28.936.
	center := GalacticToEquatorial(0, 0)
	if math.Abs(center.RA-266.405) > 0.01 {
		t.Fatalf("galactic center RA: expected ~266.405, got %g", center.RA)
	}
	if math.Abs(center.Dec-(-28.936)) > 0.01 {
		t.Fatalf("galactic center Dec: expected ~-28.936, got %g", center.Dec)
	}

	// The north galactic pole maps back onto its defining J2000 position.
	pole := GalacticToEquatorial(0, 90)
	if math.Abs(pole.RA-galacticPoleRA) > 0.01 {
		t.Fatalf("pole RA: expected %g, got %g", galacticPoleRA, pole.RA)
	}
	if math.Abs(pole.Dec-galacticPoleDec) > 0.01 {
		t.Fatalf("pole Dec: expected %g, got %g", galacticPoleDec, pole.Dec)
	}
}
