package swifttoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ObsQuery selects as-flown observations: by target ID, observation number,
// cone search around coordinates or a name, or a date range. Selectors
// combine; at least one must be present.
type ObsQuery struct {
	Name     string
	Coords   *Coords
	Radius   float64 // degrees, defaults to the XRT field of view
	TargetID int
	ObsNum   string
	Range    *DateRange
}

// ObsEntry is one spacecraft pointing from the as-flown timeline.
type ObsEntry struct {
	Begin      Time      `json:"begin"`
	End        Time      `json:"end"`
	TargetName string    `json:"targname"`
	TargetID   int       `json:"targetid"`
	Segment    int       `json:"seg"`
	RA         float64   `json:"ra"`
	Dec        float64   `json:"dec"`
	XRTMode    XRTMode   `json:"xrt"`
	UVOTMode   UVOTMode  `json:"uvot"`
	Exposure   float64   `json:"exposure"` // seconds on target
	SlewTime   float64   `json:"slewtime"` // seconds slewing
}

// ObsNum is the 11-digit observation identifier, target ID plus segment.
func (e ObsEntry) ObsNum() string {
	return fmt.Sprintf("%08d%03d", e.TargetID, e.Segment)
}

// Observation aggregates the pointings that share an observation number.
type Observation struct {
	ObsNum     string
	TargetName string
	TargetID   int
	Segment    int
	RA         float64
	Dec        float64
	Begin      Time
	End        Time
	Exposure   float64
	SlewTime   float64
	Pointings  int
}

// ObsQueryResult holds the raw pointings and their per-observation rollup.
type ObsQueryResult struct {
	Entries      []ObsEntry `json:"entries"`
	Status       Status     `json:"status"`
	Observations []Observation
}

// ObsQuery fetches the as-flown observation history matching the selectors.
func (c *Client) ObsQuery(ctx context.Context, q ObsQuery) (*ObsQueryResult, error) {
	values, status, err := c.timelineValues(ctx, q.Name, q.Coords, q.Radius, q.TargetID, q.ObsNum, q.Range)
	if err != nil {
		return nil, err
	}

	result := &ObsQueryResult{Status: *status}
	var payload ObsQueryResult
	if err := c.get(ctx, "/swift/observations", values, &payload); err != nil {
		if softMiss(err, &result.Status, "no observations matched") {
			return result, nil
		}
		return nil, err
	}
	payload.Status.Warnings = append(result.Status.Warnings, payload.Status.Warnings...)
	payload.Observations = groupObservations(payload.Entries)
	return &payload, nil
}

// timelineValues builds the shared selector parameters for the as-flown and
// pre-planned timeline queries.
func (c *Client) timelineValues(ctx context.Context, name string, coords *Coords, radius float64, targetID int, obsNum string, dates *DateRange) (url.Values, *Status, error) {
	values := url.Values{}
	status := &Status{State: JobQueued}

	resolved, err := c.resolveCoords(ctx, coords, name)
	if err != nil {
		return nil, nil, err
	}
	if resolved != nil {
		if radius <= 0 {
			radius = XRTRadius
		}
		setCoordValues(values, resolved, radius)
	}
	if targetID > 0 {
		values.Set("targetid", strconv.Itoa(targetID))
	}
	if trimmed := strings.TrimSpace(obsNum); trimmed != "" {
		values.Set("obsnum", trimmed)
	}
	if dates != nil {
		normalized, err := dates.Normalize()
		if err != nil {
			return nil, nil, err
		}
		normalized.setURLValues(values)
	}

	if len(values) == 0 {
		return nil, nil, fmt.Errorf("query needs a target, coordinates, observation number or date range")
	}
	return values, status, nil
}

// groupObservations rolls pointings up by observation number, summing
// exposure and slew time.
func groupObservations(entries []ObsEntry) []Observation {
	byObs := map[string]*Observation{}
	order := make([]string, 0)
	for _, entry := range entries {
		obsNum := entry.ObsNum()
		obs, ok := byObs[obsNum]
		if !ok {
			obs = &Observation{
				ObsNum:     obsNum,
				TargetName: entry.TargetName,
				TargetID:   entry.TargetID,
				Segment:    entry.Segment,
				RA:         entry.RA,
				Dec:        entry.Dec,
				Begin:      entry.Begin,
				End:        entry.End,
			}
			byObs[obsNum] = obs
			order = append(order, obsNum)
		}
		if entry.Begin.Before(obs.Begin.Time) {
			obs.Begin = entry.Begin
		}
		if entry.End.After(obs.End.Time) {
			obs.End = entry.End
		}
		obs.Exposure += entry.Exposure
		obs.SlewTime += entry.SlewTime
		obs.Pointings++
	}

	observations := make([]Observation, 0, len(order))
	for _, obsNum := range order {
		observations = append(observations, *byObs[obsNum])
	}
	sort.SliceStable(observations, func(i, j int) bool {
		return observations[i].Begin.Before(observations[j].Begin.Time)
	})
	return observations
}

// TableHeader implements Table.
func (r *ObsQueryResult) TableHeader() []string {
	return []string{"Obs Number", "Target", "Begin", "End", "Exposure (s)", "Slew (s)"}
}

// TableRows implements Table.
func (r *ObsQueryResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Observations))
	for _, obs := range r.Observations {
		rows = append(rows, []string{
			obs.ObsNum,
			obs.TargetName,
			formatQueryTime(obs.Begin.Time),
			formatQueryTime(obs.End.Time),
			strconv.FormatFloat(obs.Exposure, 'f', 0, 64),
			strconv.FormatFloat(obs.SlewTime, 'f', 0, 64),
		})
	}
	return rows
}

func (r *ObsQueryResult) String() string { return renderString(r) }
