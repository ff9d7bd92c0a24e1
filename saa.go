package swifttoo

import (
	"context"
	"net/url"
	"time"
)

// SAAQuery asks for South Atlantic Anomaly passage windows over a date range.
type SAAQuery struct {
	Range DateRange
	// BAT selects the wider BAT definition of the anomaly instead of the
	// spacecraft default.
	BAT bool
}

// SAAWindow is one passage through the anomaly.
type SAAWindow struct {
	Begin Time `json:"begin"`
	End   Time `json:"end"`
}

func (w SAAWindow) Duration() time.Duration {
	return w.End.Sub(w.Begin.Time)
}

// SAAResult lists the passages.
type SAAResult struct {
	Windows []SAAWindow `json:"entries"`
	Status  Status      `json:"status"`
}

// SAA fetches South Atlantic Anomaly passages for a date range.
func (c *Client) SAA(ctx context.Context, q SAAQuery) (*SAAResult, error) {
	normalized, err := q.Range.Normalize()
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	normalized.setURLValues(values)
	if q.BAT {
		values.Set("bat", "true")
	}

	result := &SAAResult{Status: Status{State: JobQueued}}
	var payload SAAResult
	if err := c.get(ctx, "/swift/saa", values, &payload); err != nil {
		if softMiss(err, &result.Status, "no SAA passages in range") {
			return result, nil
		}
		return nil, err
	}
	return &payload, nil
}

// TableHeader implements Table.
func (r *SAAResult) TableHeader() []string {
	return []string{"Begin", "End", "Duration"}
}

// TableRows implements Table.
func (r *SAAResult) TableRows() [][]string {
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

func (r *SAAResult) String() string { return renderString(r) }
