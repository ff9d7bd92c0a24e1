package swifttoo

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// ClockCorrection relates a moment in UTC, Mission Elapsed Time and the UTCF
// correction factor the spacecraft clock needed at that moment.
type ClockCorrection struct {
	UTC  Time    `json:"utctime"`
	MET  float64 `json:"met"`
	UTCF float64 `json:"utcf"`
}

// SwiftTime is the uncorrected onboard clock reading for the moment.
func (c *ClockCorrection) SwiftTime() time.Time {
	return c.UTC.Add(-time.Duration(c.UTCF * float64(time.Second)))
}

// ClockCorrect fetches the clock correction for a UTC time.
func (c *Client) ClockCorrect(ctx context.Context, t time.Time) (*ClockCorrection, error) {
	values := url.Values{}
	values.Set("utctime", formatQueryTime(t))

	var correction ClockCorrection
	if err := c.get(ctx, "/swift/clock", values, &correction); err != nil {
		return nil, err
	}
	return &correction, nil
}

// ClockCorrectMET fetches the clock correction for a Mission Elapsed Time.
func (c *Client) ClockCorrectMET(ctx context.Context, met float64) (*ClockCorrection, error) {
	values := url.Values{}
	values.Set("met", strconv.FormatFloat(met, 'f', 6, 64))

	var correction ClockCorrection
	if err := c.get(ctx, "/swift/clock", values, &correction); err != nil {
		return nil, err
	}
	return &correction, nil
}
