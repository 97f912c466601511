package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "DEFAULT_LOCATION", "SIMULATED_LATENCY", "MIN_QUERY_LENGTH",
	"SLOW_LOADING_AFTER", "NOTIFICATION_TTL", "NOTIFICATION_MAX_HISTORY",
	"NOTIFICATION_PRUNE_INTERVAL", "REFRESH_INTERVAL",
}

// isolate runs the test from an empty directory with every key unset, so no
// stray .env file or environment leaks in.
func isolate(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "new york", cfg.DefaultLocation)
	assert.Equal(t, time.Second, cfg.SimulatedLatency)
	assert.Equal(t, 2, cfg.MinQueryLength)
	assert.Equal(t, 3*time.Second, cfg.SlowLoadingAfter)
	assert.Equal(t, 30*time.Second, cfg.NotificationTTL)
	assert.Equal(t, 100, cfg.NotificationMaxHistory)
	assert.Equal(t, time.Minute, cfg.NotificationPruneEvery)
	assert.Zero(t, cfg.RefreshInterval)
}

func TestLoadOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_LOCATION", "  London ")
	t.Setenv("SIMULATED_LATENCY", "0s")
	t.Setenv("MIN_QUERY_LENGTH", "3")
	t.Setenv("REFRESH_INTERVAL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "london", cfg.DefaultLocation)
	assert.Zero(t, cfg.SimulatedLatency)
	assert.Equal(t, 3, cfg.MinQueryLength)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(".", ".env"), []byte("DEFAULT_LOCATION=Tokyo\n"), 0o600))
	// godotenv does not override variables that are already set.
	require.NoError(t, os.Unsetenv("DEFAULT_LOCATION"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "tokyo", cfg.DefaultLocation)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SIMULATED_LATENCY", "soon"},
		{"SIMULATED_LATENCY", "-1s"},
		{"SLOW_LOADING_AFTER", "3"},
		{"NOTIFICATION_TTL", "-5s"},
		{"NOTIFICATION_PRUNE_INTERVAL", "x"},
		{"REFRESH_INTERVAL", "-1m"},
		{"MIN_QUERY_LENGTH", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
