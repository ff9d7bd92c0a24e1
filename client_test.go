package swifttoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientConfig{BaseURL: server.URL})
}

func TestRequestsAreSigned(t *testing.T) {
	var gotSubject string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if len(header) < 8 || header[:7] != "Bearer " {
			t.Errorf("expected bearer authorization, got %q", header)
		}
		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(header[7:], claims, func(tok *jwt.Token) (any, error) {
			return []byte(AnonymousUser), nil
		})
		if err != nil || !token.Valid {
			t.Errorf("token did not verify: %v", err)
		}
		gotSubject = claims.Subject

		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
		fmt.Fprint(w, `{"name":"Crab","ra":83.633,"dec":22.014,"resolver":"Simbad"}`)
	})

	if _, err := client.Resolve(context.Background(), "Crab"); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if gotSubject != AnonymousUser {
		t.Fatalf("expected subject %q, got %q", AnonymousUser, gotSubject)
	}
}

func TestNewClientLeavesSuppliedHTTPClientAlone(t *testing.T) {
	supplied := &http.Client{Timeout: 5 * time.Second}
	client := NewClient(ClientConfig{HTTPClient: supplied, Timeout: 30 * time.Second})
	if supplied.Timeout != 5*time.Second {
		t.Fatalf("supplied client timeout changed to %s", supplied.Timeout)
	}
	if client.client.Timeout != 30*time.Second {
		t.Fatalf("override not applied, got %s", client.client.Timeout)
	}
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"no match"}`, http.StatusNotFound)
	})

	_, err := client.Resolve(context.Background(), "Nonexistent Source")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Resolve(context.Background(), "Crab")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestServerDetailSurfacesAsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"database on fire"}`, http.StatusInternalServerError)
	})

	_, err := client.Resolve(context.Background(), "Crab")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Detail != "database on fire" {
		t.Fatalf("expected detail from body, got %q", apiErr.Detail)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", apiErr.StatusCode)
	}
}

func TestEmptyVisQueryBecomesWarning(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"nothing visible"}`, http.StatusNotFound)
	})

	coords := &Coords{RA: 83.633, Dec: 22.014}
	result, err := client.VisQuery(context.Background(), VisQuery{
		Coords: coords,
		Range:  DateRange{Begin: mustParse(t, "2026-03-01"), Length: 5},
	})
	if err != nil {
		t.Fatalf("soft miss should not error: %v", err)
	}
	if len(result.Windows) != 0 {
		t.Fatalf("expected no windows, got %d", len(result.Windows))
	}
	if len(result.Status.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", result.Status.Warnings)
	}
}

func TestQueryJobPolling(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			fmt.Fprint(w, `{"jobnumber":7,"status":"Processing"}`)
			return
		}
		fmt.Fprint(w, `{"jobnumber":7,"status":"Accepted","too_id":1234}`)
	})

	status, err := client.WaitForJob(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("wait failed: %v", err)
	}
	if !status.Accepted() {
		t.Fatalf("expected Accepted, got %s", status.State)
	}
	if status.TOOID != 1234 {
		t.Fatalf("expected TOO ID 1234, got %d", status.TOOID)
	}
	if calls != 3 {
		t.Fatalf("expected 3 polls, got %d", calls)
	}
}

func mustParse(t *testing.T, raw string) time.Time {
	t.Helper()
	value, err := ParseTime(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return value
}
