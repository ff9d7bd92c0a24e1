package alertwatch

import (
	"context"
	"testing"
	"time"

	"swifttoo"
)

type fakeSubmitter struct {
	requests []*swifttoo.TOORequest
}

func (f *fakeSubmitter) SubmitTOO(ctx context.Context, req *swifttoo.TOORequest) (*swifttoo.Status, error) {
	f.requests = append(f.requests, req)
	return &swifttoo.Status{JobNumber: len(f.requests), State: swifttoo.JobAccepted}, nil
}

func TestDecodeAlert(t *testing.T) {
	alert, err := decodeAlert([]byte(`{"name":"AT2026abc","type":"Supernova","ra":210.9,"dec":54.3}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if alert.Name != "AT2026abc" {
		t.Fatalf("expected name AT2026abc, got %q", alert.Name)
	}

	if _, err := decodeAlert([]byte(`{"type":"Supernova"}`)); err == nil {
		t.Fatal("nameless alert should fail")
	}
	if _, err := decodeAlert([]byte(`not json`)); err == nil {
		t.Fatal("malformed payload should fail")
	}
}

func TestDefaultMapperSupernova(t *testing.T) {
	req := DefaultMapper(Alert{
		Name:      "AT2026abc",
		Type:      "Supernova",
		RA:        210.9,
		Dec:       54.3,
		Magnitude: 16.2,
		Comment:   "Rising fast.",
	})
	if req == nil {
		t.Fatal("expected a request")
	}
	if req.SourceName != "AT2026abc" || req.SourceType != "Supernova" {
		t.Fatalf("unexpected identity %q/%q", req.SourceName, req.SourceType)
	}
	if req.OptMag != 16.2 {
		t.Fatalf("expected magnitude carried over, got %g", req.OptMag)
	}

	if warnings, err := req.Validate(); err != nil {
		t.Fatalf("mapped request should validate: %v (%v)", err, warnings)
	}
}

func TestDefaultMapperGRB(t *testing.T) {
	base := Alert{
		Name:      "GRB 260214A",
		Type:      "GRB",
		RA:        120.5,
		Dec:       -12.25,
		Detector:  "Fermi/GBM",
		EventTime: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC),
	}

	req := DefaultMapper(base)
	if req == nil {
		t.Fatal("expected a request")
	}
	if req.GRBTriggerTime == nil || req.GRBDetector != "Fermi/GBM" {
		t.Fatal("expected the GRB block to be filled")
	}
	if req.Urgency != 2 {
		t.Fatalf("expected raised urgency, got %d", req.Urgency)
	}

	incomplete := base
	incomplete.Detector = ""
	if DefaultMapper(incomplete) != nil {
		t.Fatal("GRB alert without a detector should be skipped")
	}
}

func TestHandleSubmits(t *testing.T) {
	submitter := &fakeSubmitter{}
	w := &Watcher{submitter: submitter, mapper: DefaultMapper, logger: discardLogger()}

	err := w.handle(context.Background(), Alert{
		Name: "AT2026abc", Type: "Supernova", RA: 210.9, Dec: 54.3,
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(submitter.requests) != 1 {
		t.Fatalf("expected one submission, got %d", len(submitter.requests))
	}

	// A skipped alert submits nothing.
	skipAll := func(Alert) *swifttoo.TOORequest { return nil }
	w = &Watcher{submitter: submitter, mapper: skipAll, logger: discardLogger()}
	if err := w.handle(context.Background(), Alert{Name: "noise"}); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if len(submitter.requests) != 1 {
		t.Fatalf("skipped alert should not submit, got %d", len(submitter.requests))
	}
}
