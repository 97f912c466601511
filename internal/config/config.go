package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

type AppConfig struct {
	Port string

	// DefaultLocation is shown on startup and used as the fallback for unknown queries.
	DefaultLocation string

	// SimulatedLatency is the artificial delay before every lookup.
	SimulatedLatency time.Duration

	// Search behaviour.
	MinQueryLength   int
	SlowLoadingAfter time.Duration // 0 = never send still-loading notifications

	// Notification retention.
	NotificationTTL        time.Duration // 0 = never expire
	NotificationMaxHistory int           // 0 = unlimited
	NotificationPruneEvery time.Duration

	// RefreshInterval re-runs the dashboard's current search (0 = disabled).
	RefreshInterval time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.DefaultLocation = strings.ToLower(strings.TrimSpace(getenvDefault("DEFAULT_LOCATION", weather.DefaultLocation)))
	if cfg.DefaultLocation == "" {
		cfg.DefaultLocation = weather.DefaultLocation
	}

	var err error
	if cfg.SimulatedLatency, err = getenvDuration("SIMULATED_LATENCY", weather.DefaultLatency.String()); err != nil {
		return nil, err
	}

	cfg.MinQueryLength = getenvInt("MIN_QUERY_LENGTH", 2)
	if cfg.MinQueryLength < 1 {
		return nil, fmt.Errorf("invalid MIN_QUERY_LENGTH: must be at least 1, got %d", cfg.MinQueryLength)
	}

	if cfg.SlowLoadingAfter, err = getenvDuration("SLOW_LOADING_AFTER", "3s"); err != nil {
		return nil, err
	}
	if cfg.NotificationTTL, err = getenvDuration("NOTIFICATION_TTL", "30s"); err != nil {
		return nil, err
	}
	cfg.NotificationMaxHistory = getenvInt("NOTIFICATION_MAX_HISTORY", 100)
	if cfg.NotificationPruneEvery, err = getenvDuration("NOTIFICATION_PRUNE_INTERVAL", "1m"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "0s"); err != nil {
		return nil, err
	}

	return cfg, nil
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

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
