package api

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Page sizes used by the dashboard. "Has more" always comes from the
// server; these only size the requests.
const (
	RecommendedPageSize = 6
	CatalogPageSize     = 10
)

// Config holds API client configuration.
type Config struct {
	// BaseURL is the backend root, including the /api prefix.
	BaseURL string

	// Timeout is the maximum duration for a single request. Default: 30s.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://eldrige.engineer/api",
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if u := os.Getenv("SKILLSASSESS_API_URL"); u != "" {
		cfg.BaseURL = u
	}
	if t := os.Getenv("SKILLSASSESS_API_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base URL: %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive")
	}
	return nil
}
