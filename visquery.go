package swifttoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// hiResWindowLimit caps high-resolution visibility queries, which the server
// computes from the spacecraft ephemeris.
const hiResWindowLimit = 20 // days

// VisQuery asks for the windows in which a target is observable. Either
// Coords or Name must be set; a name is resolved first.
type VisQuery struct {
	Name   string
	Coords *Coords
	Range  DateRange
	// HiRes includes Earth occultation and SAA passages in the calculation.
	HiRes bool
}

// VisWindow is a single visibility interval.
type VisWindow struct {
	Begin Time `json:"begin"`
	End   Time `json:"end"`
}

func (w VisWindow) Duration() time.Duration {
	return w.End.Sub(w.Begin.Time)
}

// VisQueryResult holds the computed windows and the job status they came from.
type VisQueryResult struct {
	Windows []VisWindow `json:"entries"`
	Status  Status      `json:"status"`
}

// VisQuery computes visibility windows for a target over a date range.
// High-resolution queries are clamped to 20 days with a warning.
func (c *Client) VisQuery(ctx context.Context, q VisQuery) (*VisQueryResult, error) {
	coords, err := c.resolveCoords(ctx, q.Coords, q.Name)
	if err != nil {
		return nil, err
	}
	if coords == nil {
		return nil, fmt.Errorf("visibility query needs coordinates or a source name")
	}

	normalized, err := q.Range.Normalize()
	if err != nil {
		return nil, err
	}

	result := &VisQueryResult{Status: Status{State: JobQueued}}
	if q.HiRes && normalized.Length > hiResWindowLimit {
		result.Status.Warn("high resolution visibility limited to %d days, truncating", hiResWindowLimit)
		normalized.End = normalized.Begin.Add(daysToDuration(hiResWindowLimit))
		normalized.Length = hiResWindowLimit
	}

	values := url.Values{}
	setCoordValues(values, coords, 0)
	normalized.setURLValues(values)
	if q.HiRes {
		values.Set("hires", "true")
	}

	var payload VisQueryResult
	if err := c.get(ctx, "/swift/visquery", values, &payload); err != nil {
		if softMiss(err, &result.Status, "no visibility windows found") {
			return result, nil
		}
		return nil, err
	}
	payload.Status.Warnings = append(result.Status.Warnings, payload.Status.Warnings...)
	return &payload, nil
}

// TableHeader implements Table.
func (r *VisQueryResult) TableHeader() []string {
	return []string{"Begin", "End", "Duration"}
}

// TableRows implements Table.
func (r *VisQueryResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Windows))
	for _, window := range r.Windows {
		rows = append(rows, []string{
			formatQueryTime(window.Begin.Time),
			formatQueryTime(window.End.Time),
			window.Duration().Truncate(time.Second).String(),
		})
	}
	return rows
}

func (r *VisQueryResult) String() string { return renderString(r) }

// softMiss converts a not-found result into a recorded warning so empty
// queries do not surface as errors.
func softMiss(err error, status *Status, message string) bool {
	if err == nil {
		return false
	}
	if isNotFound(err) {
		status.Warn("%s", strings.TrimSpace(message))
		status.State = JobAccepted
		return true
	}
	return false
}
