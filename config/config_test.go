package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("YT_API_KEY", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("POLL_DEFAULT_INTERVAL", "")
	t.Setenv("DRAIN_MAX_PAGES", "")
	t.Setenv("STREAM_MIN_INTERVAL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.PollDefaultInterval != 10*time.Second {
		t.Errorf("PollDefaultInterval = %v, want 10s", cfg.PollDefaultInterval)
	}
	if cfg.DrainMaxPages != 0 {
		t.Errorf("DrainMaxPages = %d, want 0 (unbounded)", cfg.DrainMaxPages)
	}
	if cfg.StreamMinInterval != 5*time.Second {
		t.Errorf("StreamMinInterval = %v, want 5s", cfg.StreamMinInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("POLL_DEFAULT_INTERVAL", "30s")
	t.Setenv("DRAIN_MAX_PAGES", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.PollDefaultInterval != 30*time.Second {
		t.Errorf("PollDefaultInterval = %v", cfg.PollDefaultInterval)
	}
	if cfg.DrainMaxPages != 12 {
		t.Errorf("DrainMaxPages = %d", cfg.DrainMaxPages)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct{ key, val string }{
		{"POLL_DEFAULT_INTERVAL", "soon"},
		{"POLL_DEFAULT_INTERVAL", "-5s"},
		{"DRAIN_MAX_PAGES", "-1"},
		{"DRAIN_MAX_PAGES", "many"},
		{"STREAM_MIN_INTERVAL", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.val, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load() accepted %s=%q", tt.key, tt.val)
			}
		})
	}
}

func TestValidateYouTubeReady(t *testing.T) {
	t.Setenv("YT_API_KEY", "")
	t.Setenv("YT_ACCESS_TOKEN", "")
	cfg, _ := Load()
	if err := cfg.ValidateYouTubeReady(); err == nil {
		t.Error("expected error with no credentials")
	}

	t.Setenv("YT_API_KEY", "key-123")
	cfg, _ = Load()
	if err := cfg.ValidateYouTubeReady(); err != nil {
		t.Errorf("expected valid with API key, got %v", err)
	}

	t.Setenv("YT_API_KEY", "")
	t.Setenv("YT_ACCESS_TOKEN", "tok-456")
	cfg, _ = Load()
	if err := cfg.ValidateYouTubeReady(); err != nil {
		t.Errorf("expected valid with access token, got %v", err)
	}
}
