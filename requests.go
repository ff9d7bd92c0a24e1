package swifttoo

import (
	"context"
	"net/url"
	"strconv"
)

// TOORequestsQuery selects previously submitted TOO requests. With no
// selectors the most recent requests are returned up to Limit.
type TOORequestsQuery struct {
	TOOID  int
	Year   int
	Limit  int
	Name   string
	Coords *Coords
	Radius float64
	// Detail asks for full request bodies rather than summaries.
	Detail bool
}

// TOORequestSummary is the public view of a scheduled request.
type TOORequestSummary struct {
	TOOID      int      `json:"too_id"`
	SourceName string   `json:"source_name"`
	SourceType string   `json:"source_type"`
	RA         float64  `json:"ra"`
	Dec        float64  `json:"dec"`
	Instrument string   `json:"instrument"`
	Urgency    int      `json:"urgency"`
	ObsType    string   `json:"obs_type"`
	Requested  Time     `json:"timestamp"`
	XRTMode    XRTMode  `json:"xrt_mode"`
	UVOTMode   UVOTMode `json:"uvot_mode"`
	Exposure   float64  `json:"exposure"`
}

// TOORequestsResult lists matched requests. Requests is populated when
// Detail was set, Summaries otherwise.
type TOORequestsResult struct {
	Summaries []TOORequestSummary `json:"entries"`
	Requests  []TOORequest        `json:"requests,omitempty"`
	Status    Status              `json:"status"`
}

// TOORequests queries submitted TOO requests.
func (c *Client) TOORequests(ctx context.Context, q TOORequestsQuery) (*TOORequestsResult, error) {
	values := url.Values{}
	if q.TOOID > 0 {
		values.Set("too_id", strconv.Itoa(q.TOOID))
	}
	if q.Year > 0 {
		values.Set("year", strconv.Itoa(q.Year))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Detail {
		values.Set("detail", "true")
	}

	coords, err := c.resolveCoords(ctx, q.Coords, q.Name)
	if err != nil {
		return nil, err
	}
	if coords != nil {
		radius := q.Radius
		if radius <= 0 {
			radius = XRTRadius
		}
		setCoordValues(values, coords, radius)
	}

	result := &TOORequestsResult{Status: Status{State: JobQueued}}
	var payload TOORequestsResult
	if err := c.get(ctx, "/swift/requests", values, &payload); err != nil {
		if softMiss(err, &result.Status, "no TOO requests matched") {
			return result, nil
		}
		return nil, err
	}
	return &payload, nil
}

// TableHeader implements Table.
func (r *TOORequestsResult) TableHeader() []string {
	return []string{"TOO ID", "Source", "Type", "Instrument", "Urgency", "Requested", "Exposure (s)"}
}

// TableRows implements Table.
func (r *TOORequestsResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Summaries))
	for _, summary := range r.Summaries {
		rows = append(rows, []string{
			strconv.Itoa(summary.TOOID),
			summary.SourceName,
			summary.SourceType,
			summary.Instrument,
			strconv.Itoa(summary.Urgency),
			formatQueryTime(summary.Requested.Time),
			formatFloat(summary.Exposure),
		})
	}
	return rows
}

func (r *TOORequestsResult) String() string { return renderString(r) }
