package swifttoo

import (
	"context"
	"fmt"
	"strconv"
)

// Uplink states of a TOO command.
const (
	CommandPending  = "Pending"
	CommandUplinked = "Uplinked"
	CommandFailed   = "Failed"
)

// TOOCommand is one command generated for an accepted TOO, tracked through
// ground-station uplink.
type TOOCommand struct {
	Queued   Time    `json:"queued"`
	Uplinked *Time   `json:"uplinked,omitempty"`
	State    string  `json:"status"`
	RA       float64 `json:"ra"`
	Dec      float64 `json:"dec"`
	Exposure float64 `json:"exposure"`
	// Targets lists the pointings of a multi-target (ManyPoint) command.
	Targets []CommandTarget `json:"targets,omitempty"`
}

// CommandTarget is a single pointing inside a multi-target command.
type CommandTarget struct {
	TargetID int      `json:"targetid"`
	RA       float64  `json:"ra"`
	Dec      float64  `json:"dec"`
	Exposure float64  `json:"exposure"`
	XRTMode  XRTMode  `json:"xrt_mode"`
	UVOTMode UVOTMode `json:"uvot_mode"`
}

// TOOCommandsResult is the command history of one TOO.
type TOOCommandsResult struct {
	TOOID    int          `json:"too_id"`
	Commands []TOOCommand `json:"entries"`
	Status   Status       `json:"status"`
}

// TOOCommands fetches the uplink command history of a TOO request.
func (c *Client) TOOCommands(ctx context.Context, tooID int) (*TOOCommandsResult, error) {
	if tooID <= 0 {
		return nil, fmt.Errorf("invalid TOO ID %d", tooID)
	}
	var payload TOOCommandsResult
	if err := c.get(ctx, "/swift/commands/"+strconv.Itoa(tooID), nil, &payload); err != nil {
		return nil, err
	}
	if payload.TOOID == 0 {
		payload.TOOID = tooID
	}
	return &payload, nil
}

// TableHeader implements Table.
func (r *TOOCommandsResult) TableHeader() []string {
	return []string{"Queued", "Uplinked", "State", "RA", "Dec", "Exposure (s)"}
}

// TableRows implements Table.
func (r *TOOCommandsResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Commands))
	for _, command := range r.Commands {
		uplinked := ""
		if command.Uplinked != nil && !command.Uplinked.IsZero() {
			uplinked = formatQueryTime(command.Uplinked.Time)
		}
		rows = append(rows, []string{
			formatQueryTime(command.Queued.Time),
			uplinked,
			command.State,
			formatFloat(command.RA),
			formatFloat(command.Dec),
			formatFloat(command.Exposure),
		})
	}
	return rows
}

func (r *TOOCommandsResult) String() string { return renderString(r) }
