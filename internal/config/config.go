package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/airpulse/aqi-prediction-service/internal/aqi"
)

type AppConfig struct {
	Port     string
	AppEnv   string
	LogLevel slog.Level

	// HTTPTimeout bounds every outbound provider and model-server call.
	HTTPTimeout time.Duration

	// FallbackLocation is fetched when clients omit coordinates, and is kept
	// warm by the scheduler.
	FallbackLocation aqi.Location

	// FetchInterval controls the background refresh of the fallback location
	// and how long stored readings count as fresh.
	FetchInterval time.Duration

	// In-memory store retention.
	StoreMaxHistory int           // max readings per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of readings (0 = unlimited)

	// SyntheticFallback substitutes generated readings when live data is
	// unavailable.
	SyntheticFallback bool

	// ModelServerURL points at an external model server; empty means the
	// builtin models only.
	ModelServerURL string

	GeocoderAPIKey string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.AppEnv = getenvDefault("APP_ENV", "dev")

	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Default fallback location: Brasília.
	cfg.FallbackLocation = aqi.Location{
		Latitude:  getenvFloat("FALLBACK_LATITUDE", -15.7797),
		Longitude: getenvFloat("FALLBACK_LONGITUDE", -47.9297),
	}
	if cfg.FallbackLocation.Latitude < -90 || cfg.FallbackLocation.Latitude > 90 {
		return nil, fmt.Errorf("FALLBACK_LATITUDE out of range")
	}
	if cfg.FallbackLocation.Longitude < -180 || cfg.FallbackLocation.Longitude > 180 {
		return nil, fmt.Errorf("FALLBACK_LONGITUDE out of range")
	}

	interval, err := time.ParseDuration(getenvDefault("FETCH_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 120)

	maxAge, err := time.ParseDuration(getenvDefault("STORE_MAX_AGE", "120h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.SyntheticFallback = getenvBool("SYNTHETIC_FALLBACK", true)
	cfg.ModelServerURL = os.Getenv("MODEL_SERVER_URL")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
