package swifttoo

import (
	"context"
	"fmt"
	"strconv"
)

// CalendarEntry is one planned visit for an approved TOO.
type CalendarEntry struct {
	Start    Time     `json:"start"`
	Stop     Time     `json:"stop"`
	XRTMode  XRTMode  `json:"xrt_mode"`
	UVOTMode UVOTMode `json:"uvot_mode"`
	Exposure float64  `json:"exposure"`
	// AsFlown is the accumulated on-target time once the visit executed.
	AsFlown float64 `json:"afst"`
}

// CalendarResult is the planned visit schedule of a TOO.
type CalendarResult struct {
	TOOID   int             `json:"too_id"`
	Entries []CalendarEntry `json:"entries"`
	Status  Status          `json:"status"`
}

// Calendar fetches the planned visits of an approved TOO request.
func (c *Client) Calendar(ctx context.Context, tooID int) (*CalendarResult, error) {
	if tooID <= 0 {
		return nil, fmt.Errorf("invalid TOO ID %d", tooID)
	}
	var payload CalendarResult
	if err := c.get(ctx, "/swift/calendar/"+strconv.Itoa(tooID), nil, &payload); err != nil {
		return nil, err
	}
	if payload.TOOID == 0 {
		payload.TOOID = tooID
	}
	return &payload, nil
}

// TableHeader implements Table.
func (r *CalendarResult) TableHeader() []string {
	return []string{"Start", "Stop", "XRT", "UVOT", "Exposure (s)", "As Flown (s)"}
}

// TableRows implements Table.
func (r *CalendarResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Entries))
	for _, entry := range r.Entries {
		rows = append(rows, []string{
			formatQueryTime(entry.Start.Time),
			formatQueryTime(entry.Stop.Time),
			entry.XRTMode.String(),
			entry.UVOTMode.String(),
			formatFloat(entry.Exposure),
			formatFloat(entry.AsFlown),
		})
	}
	return rows
}

func (r *CalendarResult) String() string { return renderString(r) }
