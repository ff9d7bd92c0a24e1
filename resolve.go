package swifttoo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// ResolvedTarget is a source name resolved to J2000 coordinates. Resolver
// names the service that matched (Simbad, TNS or MARS).
type ResolvedTarget struct {
	Name     string  `json:"name"`
	RA       float64 `json:"ra"`
	Dec      float64 `json:"dec"`
	Resolver string  `json:"resolver"`
}

func (t *ResolvedTarget) Coords() Coords {
	return Coords{RA: t.RA, Dec: t.Dec}
}

// Resolve looks up a source name and returns its coordinates.
func (c *Client) Resolve(ctx context.Context, name string) (*ResolvedTarget, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("empty source name")
	}

	values := url.Values{}
	values.Set("name", trimmed)

	var target ResolvedTarget
	if err := c.get(ctx, "/swift/resolve", values, &target); err != nil {
		return nil, err
	}
	c.logger.Info("source resolved",
		slog.String("name", trimmed),
		slog.String("resolver", target.Resolver),
		slog.Float64("ra", target.RA),
		slog.Float64("dec", target.Dec),
	)
	return &target, nil
}
