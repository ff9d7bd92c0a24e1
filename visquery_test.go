package swifttoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"
)

func TestHiResVisQueryClampedToTwentyDays(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{
			"entries": [{"begin": "2026-03-01 00:10:00", "end": "2026-03-01 01:05:00"}],
			"status": {"status": "Accepted"}
		}`)
	})

	result, err := client.VisQuery(context.Background(), VisQuery{
		Coords: &Coords{RA: 83.633, Dec: 22.014},
		Range:  DateRange{Begin: mustParse(t, "2026-03-01"), Length: 45},
		HiRes:  true,
	})
	if err != nil {
		t.Fatalf("visquery: %v", err)
	}

	if got := gotQuery.Get("end"); got != "2026-03-21 00:00:00" {
		t.Fatalf("expected end clamped to 2026-03-21 00:00:00, got %q", got)
	}
	if gotQuery.Get("hires") != "true" {
		t.Fatal("expected hires=true on the request")
	}
	if len(result.Status.Warnings) != 1 {
		t.Fatalf("expected one truncation warning, got %v", result.Status.Warnings)
	}
}

func TestVisQueryLongRangeAllowedWithoutHiRes(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"entries": [], "status": {"status": "Accepted"}}`)
	})

	result, err := client.VisQuery(context.Background(), VisQuery{
		Coords: &Coords{RA: 83.633, Dec: 22.014},
		Range:  DateRange{Begin: mustParse(t, "2026-03-01"), Length: 45},
	})
	if err != nil {
		t.Fatalf("visquery: %v", err)
	}

	if got := gotQuery.Get("end"); got != "2026-04-15 00:00:00" {
		t.Fatalf("expected the full range, got end %q", got)
	}
	if len(result.Status.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", result.Status.Warnings)
	}
}
