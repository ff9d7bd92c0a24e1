package swifttoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// XRTRadius is the default cone search radius in degrees, the XRT field of view.
const XRTRadius = 11.8 / 60.0

var validate = validator.New(validator.WithRequiredStructEnabled())

// Coords is a J2000 sky position in decimal degrees.
type Coords struct {
	RA  float64 `json:"ra" validate:"gte=0,lt=360"`
	Dec float64 `json:"dec" validate:"gte=-90,lte=90"`
}

// Validate checks the coordinate bounds: RA in [0, 360), Dec in [-90, 90].
func (c Coords) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid coordinates (%.5f, %.5f): %w", c.RA, c.Dec, err)
	}
	return nil
}

func (c Coords) String() string {
	return fmt.Sprintf("(%.5f, %.5f)", c.RA, c.Dec)
}

// DateRange is a UTC interval. Length is in days; any two of Begin, End and
// Length determine the third.
type DateRange struct {
	Begin  time.Time
	End    time.Time
	Length float64
}

// Normalize fills in the missing member of Begin/End/Length and validates the
// result. A range needs at least Begin plus one of End or Length.
func (r DateRange) Normalize() (DateRange, error) {
	normalized := r
	switch {
	case !normalized.Begin.IsZero() && !normalized.End.IsZero():
		normalized.Length = normalized.End.Sub(normalized.Begin).Hours() / 24
	case !normalized.Begin.IsZero() && normalized.Length > 0:
		normalized.End = normalized.Begin.Add(daysToDuration(normalized.Length))
	case !normalized.End.IsZero() && normalized.Length > 0:
		normalized.Begin = normalized.End.Add(-daysToDuration(normalized.Length))
	default:
		return DateRange{}, fmt.Errorf("date range needs begin plus end or length")
	}

	if normalized.End.Before(normalized.Begin) {
		return DateRange{}, fmt.Errorf("date range ends %s before it begins %s",
			formatQueryTime(normalized.End), formatQueryTime(normalized.Begin))
	}
	normalized.Begin = normalized.Begin.UTC()
	normalized.End = normalized.End.UTC()
	return normalized, nil
}

// setURLValues writes the range onto query parameters.
func (r DateRange) setURLValues(values url.Values) {
	values.Set("begin", formatQueryTime(r.Begin))
	values.Set("end", formatQueryTime(r.End))
}

func daysToDuration(days float64) time.Duration {
	return time.Duration(days * 24 * float64(time.Hour))
}

func setCoordValues(values url.Values, coords *Coords, radius float64) {
	if coords == nil {
		return
	}
	values.Set("ra", strconv.FormatFloat(coords.RA, 'f', 5, 64))
	values.Set("dec", strconv.FormatFloat(coords.Dec, 'f', 5, 64))
	if radius > 0 {
		values.Set("radius", strconv.FormatFloat(radius, 'f', 5, 64))
	}
}

// resolveCoords returns explicit coordinates, or resolves the name when only
// a name was given.
func (c *Client) resolveCoords(ctx context.Context, coords *Coords, name string) (*Coords, error) {
	if coords != nil {
		if err := coords.Validate(); err != nil {
			return nil, err
		}
		return coords, nil
	}
	if name == "" {
		return nil, nil
	}
	target, err := c.Resolve(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", name, err)
	}
	resolved := Coords{RA: target.RA, Dec: target.Dec}
	return &resolved, nil
}
