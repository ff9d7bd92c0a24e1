package swifttoo

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// GUANOQuery selects BAT event-data dumps triggered by the Gamma-ray Urgent
// Archiver for Novel Opportunities. Select by exact trigger time, a date
// range, or trigger type.
type GUANOQuery struct {
	TriggerTime *time.Time
	TriggerType string
	Range       *DateRange
	Limit       int
	// SubThreshold includes dumps for triggers below the rate threshold.
	SubThreshold bool
}

// GUANOEntry is a single commanded event-data dump.
type GUANOEntry struct {
	TriggerType string  `json:"triggertype"`
	TriggerTime Time    `json:"triggertime"`
	Offset      float64 `json:"offset"`   // dump window start relative to trigger, seconds
	Duration    float64 `json:"duration"` // dump window length, seconds
	ObsNum      string  `json:"obsnum"`
	// QuadsAway counts the spacecraft quadrants that returned data; zero
	// means the dump never executed.
	QuadsAway int `json:"quadsaway"`
}

// Executed reports whether any data came down for the dump.
func (e GUANOEntry) Executed() bool { return e.QuadsAway > 0 }

// GTI returns the good time interval covered by the dump.
func (e GUANOEntry) GTI() (time.Time, time.Time) {
	begin := e.TriggerTime.Add(time.Duration(e.Offset * float64(time.Second)))
	end := begin.Add(time.Duration(e.Duration * float64(time.Second)))
	return begin, end
}

// GUANOResult lists matching dumps.
type GUANOResult struct {
	Entries []GUANOEntry `json:"entries"`
	Status  Status       `json:"status"`
}

// GUANO queries commanded BAT event-data dumps.
func (c *Client) GUANO(ctx context.Context, q GUANOQuery) (*GUANOResult, error) {
	values := url.Values{}
	if q.TriggerTime != nil && !q.TriggerTime.IsZero() {
		values.Set("triggertime", formatQueryTime(*q.TriggerTime))
	}
	if trimmed := strings.TrimSpace(q.TriggerType); trimmed != "" {
		values.Set("triggertype", trimmed)
	}
	if q.Range != nil {
		normalized, err := q.Range.Normalize()
		if err != nil {
			return nil, err
		}
		normalized.setURLValues(values)
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.SubThreshold {
		values.Set("subthreshold", "true")
	}

	result := &GUANOResult{Status: Status{State: JobQueued}}
	var payload GUANOResult
	if err := c.get(ctx, "/swift/guano", values, &payload); err != nil {
		if softMiss(err, &result.Status, "no event dumps matched") {
			return result, nil
		}
		return nil, err
	}
	return &payload, nil
}

// TableHeader implements Table.
func (r *GUANOResult) TableHeader() []string {
	return []string{"Trigger Type", "Trigger Time", "Offset (s)", "Duration (s)", "Obs Number", "Executed"}
}

// TableRows implements Table.
func (r *GUANOResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Entries))
	for _, entry := range r.Entries {
		rows = append(rows, []string{
			entry.TriggerType,
			formatQueryTime(entry.TriggerTime.Time),
			formatFloat(entry.Offset),
			formatFloat(entry.Duration),
			entry.ObsNum,
			strconv.FormatBool(entry.Executed()),
		})
	}
	return rows
}

func (r *GUANOResult) String() string { return renderString(r) }
