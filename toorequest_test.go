package swifttoo

import (
	"strings"
	"testing"
	"time"
)

func validRequest() *TOORequest {
	req := NewTOORequest()
	req.SourceName = "SN 2026ab"
	req.SourceType = "Supernova"
	req.RA = 210.91067
	req.Dec = 54.31167
	req.ObsType = ObsLightCurve
	req.ExpTimePerVisit = 2000
	req.Exposure = 2000
	req.ExpTimeJust = "2 ks to detect the X-ray counterpart"
	req.ScienceJust = "Young nearby supernova"
	req.XRTCountRate = 0.1
	return req
}

func TestValidRequestPasses(t *testing.T) {
	warnings, err := validRequest().Validate()
	if err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}

func TestMissingRequiredFields(t *testing.T) {
	req := validRequest()
	req.SourceName = ""
	req.ScienceJust = " "
	if _, err := req.Validate(); err == nil {
		t.Fatal("expected missing-field errors")
	}
}

func TestBadObsTypeAndInstrument(t *testing.T) {
	req := validRequest()
	req.ObsType = "Photometry"
	_, err := req.Validate()
	if err == nil || !strings.Contains(err.Error(), "observation type") {
		t.Fatalf("expected observation type error, got %v", err)
	}

	req = validRequest()
	req.Instrument = "NICER"
	_, err = req.Validate()
	if err == nil || !strings.Contains(err.Error(), "instrument") {
		t.Fatalf("expected instrument error, got %v", err)
	}
}

func TestUrgencyBounds(t *testing.T) {
	for _, urgency := range []int{0, 5} {
		req := validRequest()
		req.Urgency = urgency
		if _, err := req.Validate(); err == nil {
			t.Fatalf("urgency %d should fail", urgency)
		}
	}
	for urgency := 1; urgency <= 4; urgency++ {
		req := validRequest()
		req.Urgency = urgency
		if _, err := req.Validate(); err != nil {
			t.Fatalf("urgency %d should pass: %v", urgency, err)
		}
	}
}

func TestMonitoringRules(t *testing.T) {
	req := validRequest()
	req.NumOfVisits = 5
	if _, err := req.Validate(); err == nil {
		t.Fatal("monitoring without cadence should fail")
	}

	req = validRequest()
	req.NumOfVisits = 5
	req.MonitoringFreq = "2 fortnights"
	if _, err := req.Validate(); err == nil {
		t.Fatal("bad cadence unit should fail")
	}

	req = validRequest()
	req.NumOfVisits = 5
	req.MonitoringFreq = "2 days"
	req.Exposure = 2000 // stale total, should be corrected
	warnings, err := req.Validate()
	if err != nil {
		t.Fatalf("monitoring request should pass: %v", err)
	}
	if req.Exposure != 10000 {
		t.Fatalf("expected corrected exposure 10000, got %g", req.Exposure)
	}
	found := false
	for _, warning := range warnings {
		if strings.Contains(warning, "total exposure adjusted") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected exposure warning, got %v", warnings)
	}
}

func TestGRBRules(t *testing.T) {
	req := validRequest()
	req.SourceType = "GRB"
	if _, err := req.Validate(); err == nil {
		t.Fatal("GRB without trigger info should fail")
	}

	trigger := Time{Time: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)}
	req.GRBTriggerTime = &trigger
	req.GRBDetector = "Fermi/GBM"
	if _, err := req.Validate(); err != nil {
		t.Fatalf("complete GRB block should pass: %v", err)
	}
}

func TestGIProposalAllOrNothing(t *testing.T) {
	req := validRequest()
	req.ProposalID = "2026-XRT-042"
	if _, err := req.Validate(); err == nil {
		t.Fatal("partial GI block should fail")
	}

	req.ProposalPI = "A. Observer"
	req.ProposalTriggerJust = "Pre-approved trigger criteria met"
	if _, err := req.Validate(); err != nil {
		t.Fatalf("complete GI block should pass: %v", err)
	}
	if !req.Proposal {
		t.Fatal("proposal flag should be set when the block is complete")
	}
}

func TestTilingNeedsJustification(t *testing.T) {
	req := validRequest()
	req.Tiling = true
	if _, err := req.Validate(); err == nil {
		t.Fatal("tiling without justification should fail")
	}

	req.TilingJust = "GW localization covers 20 sq deg"
	warnings, err := req.Validate()
	if err != nil {
		t.Fatalf("justified tiling should pass: %v", err)
	}
	found := false
	for _, warning := range warnings {
		if strings.Contains(warning, "number of tiles") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected tile count warning, got %v", warnings)
	}
}

func TestBrightnessWarning(t *testing.T) {
	req := validRequest()
	req.XRTCountRate = 0
	warnings, err := req.Validate()
	if err != nil {
		t.Fatalf("request should pass: %v", err)
	}
	found := false
	for _, warning := range warnings {
		if strings.Contains(warning, "brightness") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected brightness warning, got %v", warnings)
	}
}
