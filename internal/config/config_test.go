package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v, want 15s", cfg.HTTPTimeout)
	}
	if cfg.FetchInterval != 15*time.Minute {
		t.Errorf("FetchInterval = %v, want 15m", cfg.FetchInterval)
	}
	if !cfg.SyntheticFallback {
		t.Errorf("SyntheticFallback should default to true")
	}
	if cfg.FallbackLocation.Latitude != -15.7797 || cfg.FallbackLocation.Longitude != -47.9297 {
		t.Errorf("unexpected fallback location: %+v", cfg.FallbackLocation)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("SYNTHETIC_FALLBACK", "false")
	t.Setenv("FALLBACK_LATITUDE", "52.52")
	t.Setenv("FALLBACK_LONGITUDE", "13.405")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v, want 5s", cfg.HTTPTimeout)
	}
	if cfg.SyntheticFallback {
		t.Errorf("SyntheticFallback should be disabled")
	}
	if cfg.FallbackLocation.Latitude != 52.52 {
		t.Errorf("FallbackLocation.Latitude = %v, want 52.52", cfg.FallbackLocation.Latitude)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Errorf("expected error for invalid HTTP_TIMEOUT")
	}

	t.Setenv("HTTP_TIMEOUT", "15s")
	t.Setenv("FALLBACK_LATITUDE", "123")
	if _, err := Load(); err == nil {
		t.Errorf("expected error for out-of-range FALLBACK_LATITUDE")
	}

	t.Setenv("FALLBACK_LATITUDE", "0")
	t.Setenv("LOG_LEVEL", "verbose")
	if _, err := Load(); err == nil {
		t.Errorf("expected error for invalid LOG_LEVEL")
	}
}
