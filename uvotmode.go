package swifttoo

import (
	"context"
	"net/url"
)

// UVOTModeEntry describes one filter exposure within a UVOT mode word.
type UVOTModeEntry struct {
	UVOTMode    UVOTMode `json:"uvotmode"`
	Filter      string   `json:"filter_name"`
	EventFOV    float64  `json:"eventfov"`
	ImageFOV    float64  `json:"imagefov"`
	BinSize     int      `json:"binsize"`
	MaxExposure float64  `json:"max_exposure"`
	Weight      float64  `json:"weight"`
	Comment     string   `json:"comment"`
}

// UVOTModeResult is the filter table for a single mode word.
type UVOTModeResult struct {
	Mode    UVOTMode        `json:"uvotmode"`
	Entries []UVOTModeEntry `json:"entries"`
	Status  Status          `json:"status"`
}

// UVOTModeLookup fetches the filter breakdown of a UVOT mode word.
func (c *Client) UVOTModeLookup(ctx context.Context, mode UVOTMode) (*UVOTModeResult, error) {
	values := url.Values{}
	values.Set("uvotmode", mode.String())

	var payload UVOTModeResult
	if err := c.get(ctx, "/swift/uvotmode", values, &payload); err != nil {
		return nil, err
	}
	if payload.Mode == 0 {
		payload.Mode = mode
	}
	return &payload, nil
}

// TableHeader implements Table.
func (r *UVOTModeResult) TableHeader() []string {
	return []string{"Filter", "Event FOV", "Image FOV", "Bin", "Max Exp (s)", "Weight", "Comment"}
}

// TableRows implements Table.
func (r *UVOTModeResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Entries))
	for _, entry := range r.Entries {
		rows = append(rows, []string{
			entry.Filter,
			formatFloat(entry.EventFOV),
			formatFloat(entry.ImageFOV),
			formatInt(entry.BinSize),
			formatFloat(entry.MaxExposure),
			formatFloat(entry.Weight),
			entry.Comment,
		})
	}
	return rows
}

func (r *UVOTModeResult) String() string { return renderString(r) }
