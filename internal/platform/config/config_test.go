package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.PostgresURL)
	assert.Empty(t, cfg.OSMBaseURL)
	assert.Equal(t, 30*time.Second, cfg.OSMTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("POSTGRES_URL", "postgres://localhost/coffee")
	t.Setenv("OSM_BASE_URL", "http://localhost:8181")
	t.Setenv("OSM_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "postgres://localhost/coffee", cfg.PostgresURL)
	assert.Equal(t, "http://localhost:8181", cfg.OSMBaseURL)
	assert.Equal(t, 5*time.Second, cfg.OSMTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsInvalidDurations(t *testing.T) {
	t.Setenv("OSM_TIMEOUT", "soon")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("OSM_TIMEOUT", "-1s")
	_, err = Load()
	require.Error(t, err)
}
