package swifttoo

import (
	"encoding/json"
	"testing"
)

func TestParseXRTMode(t *testing.T) {
	cases := []struct {
		raw  string
		want XRTMode
	}{
		{"WT", XRTWT},
		{"pc", XRTPC},
		{"Auto", XRTAuto},
		{"7", XRTPC},
		{"6", XRTWT},
	}
	for _, tc := range cases {
		got, err := ParseXRTMode(tc.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %v, got %v", tc.raw, tc.want, got)
		}
	}

	for _, bad := range []string{"", "Timing", "42"} {
		if _, err := ParseXRTMode(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseUVOTMode(t *testing.T) {
	cases := []struct {
		raw  string
		want UVOTMode
	}{
		{"0x9999", UVOTFilterOfTheDay},
		{"0x30ed", 0x30ed},
		{"30ed", 0x30ed},
		{"223", 223},
	}
	for _, tc := range cases {
		got, err := ParseUVOTMode(tc.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %v, got %v", tc.raw, tc.want, got)
		}
	}

	if _, err := ParseUVOTMode("0xzz"); err == nil {
		t.Fatal("expected error for bad hex")
	}
}

func TestModeJSON(t *testing.T) {
	var decoded struct {
		XRT  XRTMode  `json:"xrt"`
		UVOT UVOTMode `json:"uvot"`
	}
	if err := json.Unmarshal([]byte(`{"xrt":7,"uvot":"0x30ed"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.XRT != XRTPC {
		t.Fatalf("expected PC, got %v", decoded.XRT)
	}
	if decoded.UVOT != 0x30ed {
		t.Fatalf("expected 0x30ed, got %v", decoded.UVOT)
	}

	if decoded.XRT.String() != "PC" {
		t.Fatalf("expected PC string, got %q", decoded.XRT.String())
	}
	if decoded.UVOT.String() != "0x30ed" {
		t.Fatalf("expected 0x30ed string, got %q", decoded.UVOT.String())
	}
}
