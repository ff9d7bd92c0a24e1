package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries everything the binaries need to talk to the TOO API and its
// supporting services.
type Config struct {
	API      APIConfig
	Logging  LoggingConfig
	Alerts   AlertsConfig
	Download DownloadConfig
}

// APIConfig selects the TOO API endpoint and the identity used to sign requests.
type APIConfig struct {
	BaseURL  string
	Username string
	Secret   string
	Timeout  time.Duration
	Debug    bool
}

// LoggingConfig mirrors the slog handler settings.
type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
}

// AlertsConfig configures the transient alert consumer.
type AlertsConfig struct {
	Brokers []string
	GroupID string
	Topic   string
}

// DownloadConfig selects the archive mirror for data products.
type DownloadConfig struct {
	Outdir    string
	Mirror    string // heasarc, uksdc, itsdc or aws
	Clobber   bool
	Quicklook bool
}

func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL:  envOr("SWIFTTOO_API_URL", "https://www.swift.psu.edu/toop/api/v1"),
			Username: envOr("SWIFTTOO_USERNAME", "anonymous"),
			Secret:   envOr("SWIFTTOO_SECRET", "anonymous"),
			Timeout:  60 * time.Second,
			Debug:    boolEnv("SWIFTTOO_DEBUG"),
		},
		Logging: LoggingConfig{
			Level:     envOr("SWIFTTOO_LOG_LEVEL", "info"),
			Format:    envOr("SWIFTTOO_LOG_FORMAT", "text"),
			Directory: strings.TrimSpace(os.Getenv("SWIFTTOO_LOG_DIR")),
		},
		Alerts: AlertsConfig{
			Brokers: splitList(os.Getenv("SWIFTTOO_ALERT_BROKERS")),
			GroupID: envOr("SWIFTTOO_ALERT_GROUP", "swifttoo-alerts"),
			Topic:   envOr("SWIFTTOO_ALERT_TOPIC", "transient.alerts"),
		},
		Download: DownloadConfig{
			Outdir:    envOr("SWIFTTOO_OUTDIR", "."),
			Mirror:    envOr("SWIFTTOO_MIRROR", "heasarc"),
			Clobber:   boolEnv("SWIFTTOO_CLOBBER"),
			Quicklook: boolEnv("SWIFTTOO_QUICKLOOK"),
		},
	}

	if raw := strings.TrimSpace(os.Getenv("SWIFTTOO_TIMEOUT")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid SWIFTTOO_TIMEOUT %q", raw)
		}
		cfg.API.Timeout = time.Duration(seconds) * time.Second
	}

	switch cfg.Download.Mirror {
	case "heasarc", "uksdc", "itsdc", "aws":
	default:
		return nil, fmt.Errorf("unknown SWIFTTOO_MIRROR %q", cfg.Download.Mirror)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func boolEnv(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
