// Package config loads environment variables and provides a typed Config used across the service.
// It applies sensible defaults so the binary can run locally with minimal setup.
// For required YouTube credentials, use ValidateYouTubeReady.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// YouTube Data API auth. Either an API key or a pre-obtained OAuth
	// access token; the key wins when both are set.
	YTAPIKey      string
	YTAccessToken string

	// HTTP
	HTTPAddr string

	// Polling
	PollDefaultInterval time.Duration
	DrainMaxPages       int

	// Aggregate SSE stream cadence floor.
	StreamMinInterval time.Duration
}

// Load reads environment variables and applies defaults. Missing
// credentials don't fail the load; use ValidateYouTubeReady when a live
// fetch is about to be wired up.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.YTAPIKey = os.Getenv("YT_API_KEY")
	cfg.YTAccessToken = os.Getenv("YT_ACCESS_TOKEN")

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	cfg.PollDefaultInterval = 10 * time.Second
	if v := os.Getenv("POLL_DEFAULT_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid POLL_DEFAULT_INTERVAL (duration): %q", v)
		}
		cfg.PollDefaultInterval = d
	}

	if v := os.Getenv("DRAIN_MAX_PAGES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid DRAIN_MAX_PAGES (non-negative int): %q", v)
		}
		cfg.DrainMaxPages = n
	}

	cfg.StreamMinInterval = 5 * time.Second
	if v := os.Getenv("STREAM_MIN_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid STREAM_MIN_INTERVAL (duration): %q", v)
		}
		cfg.StreamMinInterval = d
	}

	return cfg, nil
}

// ValidateYouTubeReady checks that some YouTube credential is configured.
func (c *Config) ValidateYouTubeReady() error {
	if c.YTAPIKey == "" && c.YTAccessToken == "" {
		return fmt.Errorf("missing youtube env: require YT_API_KEY or YT_ACCESS_TOKEN")
	}
	return nil
}
