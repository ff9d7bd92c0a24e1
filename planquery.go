package swifttoo

import (
	"context"
	"strconv"
)

// PlanQuery selects entries from the pre-planned science timeline with the
// same selectors as ObsQuery.
type PlanQuery struct {
	Name     string
	Coords   *Coords
	Radius   float64
	TargetID int
	ObsNum   string
	Range    *DateRange
}

// PlanEntry is one planned pointing. Exposure here is the planned duration,
// not time actually spent on target.
type PlanEntry struct {
	Begin      Time     `json:"begin"`
	End        Time     `json:"end"`
	TargetName string   `json:"targname"`
	TargetID   int      `json:"targetid"`
	Segment    int      `json:"seg"`
	RA         float64  `json:"ra"`
	Dec        float64  `json:"dec"`
	Roll       float64  `json:"roll"`
	XRTMode    XRTMode  `json:"xrt"`
	UVOTMode   UVOTMode `json:"uvot"`
	Exposure   float64  `json:"exposure"`
}

// PlanQueryResult holds matched plan entries.
type PlanQueryResult struct {
	Entries []PlanEntry `json:"entries"`
	Status  Status      `json:"status"`
}

// PlanQuery fetches the pre-planned science timeline matching the selectors.
func (c *Client) PlanQuery(ctx context.Context, q PlanQuery) (*PlanQueryResult, error) {
	values, status, err := c.timelineValues(ctx, q.Name, q.Coords, q.Radius, q.TargetID, q.ObsNum, q.Range)
	if err != nil {
		return nil, err
	}

	result := &PlanQueryResult{Status: *status}
	var payload PlanQueryResult
	if err := c.get(ctx, "/swift/plan", values, &payload); err != nil {
		if softMiss(err, &result.Status, "no planned observations matched") {
			return result, nil
		}
		return nil, err
	}
	payload.Status.Warnings = append(result.Status.Warnings, payload.Status.Warnings...)
	return &payload, nil
}

// TableHeader implements Table.
func (r *PlanQueryResult) TableHeader() []string {
	return []string{"Target", "Obs Number", "Begin", "End", "XRT", "UVOT", "Exposure (s)"}
}

// TableRows implements Table.
func (r *PlanQueryResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Entries))
	for _, entry := range r.Entries {
		obsNum := ObsEntry{TargetID: entry.TargetID, Segment: entry.Segment}.ObsNum()
		rows = append(rows, []string{
			entry.TargetName,
			obsNum,
			formatQueryTime(entry.Begin.Time),
			formatQueryTime(entry.End.Time),
			entry.XRTMode.String(),
			entry.UVOTMode.String(),
			strconv.FormatFloat(entry.Exposure, 'f', 0, 64),
		})
	}
	return rows
}

func (r *PlanQueryResult) String() string { return renderString(r) }
