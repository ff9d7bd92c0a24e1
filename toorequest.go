package swifttoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Observation types accepted for a TOO request.
const (
	ObsSpectroscopy = "Spectroscopy"
	ObsLightCurve   = "Light Curve"
	ObsPosition     = "Position"
	ObsTiming       = "Timing"
)

var obsTypes = []string{ObsSpectroscopy, ObsLightCurve, ObsPosition, ObsTiming}

// Primary instruments.
const (
	InstrumentXRT  = "XRT"
	InstrumentBAT  = "BAT"
	InstrumentUVOT = "UVOT"
)

var instruments = []string{InstrumentXRT, InstrumentBAT, InstrumentUVOT}

// monitoringUnits are the cadence units accepted for monitoring requests.
var monitoringUnits = []string{"second", "minute", "hour", "day", "week", "month", "year", "orbit"}

// TOORequest is a Target of Opportunity observation request. Required for
// submission: source name and type, coordinates, the observation type, the
// exposure per visit with its justification, and the science justification.
type TOORequest struct {
	Username   string `json:"username,omitempty"`
	SourceName string `json:"source_name" validate:"required"`
	SourceType string `json:"source_type" validate:"required"`

	RA     float64 `json:"ra" validate:"gte=0,lt=360"`
	Dec    float64 `json:"dec" validate:"gte=-90,lte=90"`
	PosErr float64 `json:"poserr,omitempty"` // 90% error radius, arcminutes

	Instrument string `json:"instrument"`
	Urgency    int    `json:"urgency" validate:"gte=1,lte=4"`
	ObsType    string `json:"obs_type" validate:"required"`

	// Brightness estimates; at least one should be supplied.
	OptMag       float64 `json:"opt_mag,omitempty"`
	OptFilter    string  `json:"opt_filt,omitempty"`
	XRTCountRate float64 `json:"xrt_countrate,omitempty"`
	BATCountRate float64 `json:"bat_countrate,omitempty"`

	ImmediateObjective string `json:"immediate_objective,omitempty"`
	ScienceJust        string `json:"science_just" validate:"required"`

	Exposure        float64 `json:"exposure"` // total requested seconds
	ExpTimePerVisit float64 `json:"exp_time_per_visit,omitempty"`
	ExpTimeJust     string  `json:"exp_time_just" validate:"required"`

	NumOfVisits    int    `json:"num_of_visits"`
	MonitoringFreq string `json:"monitoring_freq,omitempty"` // e.g. "2 days"

	// Guest Investigator proposal block; all or none.
	Proposal            bool   `json:"proposal,omitempty"`
	ProposalID          string `json:"proposal_id,omitempty"`
	ProposalPI          string `json:"proposal_pi,omitempty"`
	ProposalTriggerJust string `json:"proposal_trigger_just,omitempty"`

	// GRB block; required when the source type is GRB.
	GRBTriggerTime *Time  `json:"grb_triggertime,omitempty"`
	GRBDetector    string `json:"grb_detector,omitempty"`

	// Tiling block for poorly localized sources.
	Tiling              bool    `json:"tiling,omitempty"`
	NumberOfTiles       int     `json:"number_of_tiles,omitempty"`
	ExposureTimePerTile float64 `json:"exposure_time_per_tile,omitempty"`
	TilingJust          string  `json:"tiling_justification,omitempty"`

	XRTMode  XRTMode  `json:"xrt_mode"`
	UVOTMode UVOTMode `json:"uvot_mode"`
	UVOTJust string   `json:"uvot_just,omitempty"`

	// TOOID is set on requests fetched back from the API.
	TOOID int `json:"too_id,omitempty"`

	Debug        bool `json:"debug,omitempty"`
	ValidateOnly bool `json:"validate_only,omitempty"`
}

// NewTOORequest returns a request with the usual defaults: XRT in auto mode,
// UVOT filter of the day, urgency 3, a single visit.
func NewTOORequest() *TOORequest {
	return &TOORequest{
		Instrument:  InstrumentXRT,
		Urgency:     3,
		XRTMode:     XRTAuto,
		UVOTMode:    UVOTFilterOfTheDay,
		NumOfVisits: 1,
	}
}

// Validate applies the submission rules locally. It returns advisory warnings
// alongside any hard errors; a request with errors will be rejected server
// side as well.
func (r *TOORequest) Validate() ([]string, error) {
	var warnings []string
	var errs []error

	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	r.SourceName = strings.TrimSpace(r.SourceName)
	r.SourceType = strings.TrimSpace(r.SourceType)
	r.ObsType = strings.TrimSpace(r.ObsType)
	r.Instrument = strings.TrimSpace(r.Instrument)

	if err := validate.Struct(r); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fieldErr := range fieldErrors {
				fail("field %s fails %s constraint", fieldErr.Field(), fieldErr.Tag())
			}
		} else {
			fail("validate request: %v", err)
		}
	}

	if !contains(obsTypes, r.ObsType) {
		fail("observation type %q must be one of %s", r.ObsType, strings.Join(obsTypes, ", "))
	}
	if !contains(instruments, r.Instrument) {
		fail("instrument %q must be one of %s", r.Instrument, strings.Join(instruments, ", "))
	}

	if r.NumOfVisits < 1 {
		fail("number of visits must be at least 1")
	}
	if r.NumOfVisits > 1 {
		if strings.TrimSpace(r.MonitoringFreq) == "" {
			fail("monitoring requests need a cadence, e.g. \"2 days\"")
		} else if err := validateMonitoringFreq(r.MonitoringFreq); err != nil {
			errs = append(errs, err)
		}
		if r.ExpTimePerVisit > 0 {
			expected := r.ExpTimePerVisit * float64(r.NumOfVisits)
			if r.Exposure != expected {
				warn("total exposure adjusted to %g s (%g s x %d visits)", expected, r.ExpTimePerVisit, r.NumOfVisits)
				r.Exposure = expected
			}
		}
	} else if r.Exposure == 0 && r.ExpTimePerVisit > 0 {
		r.Exposure = r.ExpTimePerVisit
	}
	if r.Exposure <= 0 {
		fail("requested exposure must be positive")
	}

	if strings.EqualFold(r.SourceType, "GRB") {
		if r.GRBTriggerTime == nil || r.GRBTriggerTime.IsZero() {
			fail("GRB requests need the trigger time")
		}
		if strings.TrimSpace(r.GRBDetector) == "" {
			fail("GRB requests need the detecting mission, e.g. \"Swift/BAT\"")
		}
	}

	giFields := []string{r.ProposalID, r.ProposalPI, r.ProposalTriggerJust}
	giSet := 0
	for _, field := range giFields {
		if strings.TrimSpace(field) != "" {
			giSet++
		}
	}
	if r.Proposal || giSet > 0 {
		if giSet != len(giFields) {
			fail("GI proposals need the proposal ID, PI and trigger justification together")
		}
		r.Proposal = true
	}

	if r.Tiling {
		if strings.TrimSpace(r.TilingJust) == "" {
			fail("tiled requests need a tiling justification")
		}
		if r.NumberOfTiles <= 0 {
			warn("number of tiles unset, the planners will choose")
		}
	}

	if r.OptMag == 0 && r.XRTCountRate == 0 && r.BATCountRate == 0 {
		warn("no brightness estimate given")
	}
	if r.Instrument == InstrumentUVOT && r.UVOTMode != UVOTFilterOfTheDay && strings.TrimSpace(r.UVOTJust) == "" {
		warn("non-default UVOT mode requested without a justification")
	}

	return warnings, errors.Join(errs...)
}

func validateMonitoringFreq(raw string) error {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(fields) != 2 {
		return fmt.Errorf("cadence %q must be \"<number> <unit>\"", raw)
	}
	if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
		return fmt.Errorf("cadence %q has a bad number", raw)
	}
	unit := strings.TrimSuffix(fields[1], "s")
	if !contains(monitoringUnits, unit) {
		return fmt.Errorf("cadence unit %q must be one of %s", fields[1], strings.Join(monitoringUnits, ", "))
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

// SubmitTOO validates and submits a TOO request, returning the job status.
// Warnings from local validation are folded into the returned status.
func (c *Client) SubmitTOO(ctx context.Context, req *TOORequest) (*Status, error) {
	warnings, err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("request failed validation: %w", err)
	}
	req.Username = c.username

	var status Status
	if err := c.send(ctx, http.MethodPost, "/swift/too", req, &status); err != nil {
		return nil, err
	}
	status.Warnings = append(warnings, status.Warnings...)
	return &status, nil
}

// ServerValidateTOO submits the request in validate-only mode: the server
// checks it fully but schedules nothing.
func (c *Client) ServerValidateTOO(ctx context.Context, req *TOORequest) (*Status, error) {
	copied := *req
	copied.ValidateOnly = true
	return c.SubmitTOO(ctx, &copied)
}

// GetTOO fetches an existing TOO request by its ID.
func (c *Client) GetTOO(ctx context.Context, tooID int) (*TOORequest, error) {
	if tooID <= 0 {
		return nil, fmt.Errorf("invalid TOO ID %d", tooID)
	}
	var req TOORequest
	if err := c.get(ctx, "/swift/too/"+strconv.Itoa(tooID), nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateTOO modifies a previously submitted request.
func (c *Client) UpdateTOO(ctx context.Context, req *TOORequest) (*Status, error) {
	if req.TOOID <= 0 {
		return nil, fmt.Errorf("update needs the TOO ID")
	}
	warnings, err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("request failed validation: %w", err)
	}
	req.Username = c.username

	var status Status
	if err := c.send(ctx, http.MethodPut, "/swift/too/"+strconv.Itoa(req.TOOID), req, &status); err != nil {
		return nil, err
	}
	status.Warnings = append(warnings, status.Warnings...)
	return &status, nil
}

// CancelTOO withdraws a submitted request.
func (c *Client) CancelTOO(ctx context.Context, tooID int) (*Status, error) {
	if tooID <= 0 {
		return nil, fmt.Errorf("invalid TOO ID %d", tooID)
	}
	var status Status
	if err := c.send(ctx, http.MethodDelete, "/swift/too/"+strconv.Itoa(tooID), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
