package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/hackhub/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/hackhub.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.AnalyzeTimeout)
	assert.Equal(t, time.Duration(0), cfg.RefreshInterval)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REFRESH_INTERVAL", "15s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.RefreshInterval)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "-1")

	_, err := config.Load()
	require.Error(t, err)
}
