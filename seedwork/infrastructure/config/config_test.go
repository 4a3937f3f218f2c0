package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "embedded", cfg.Store.Type)
	assert.Equal(t, "none", cfg.LLM.Provider)
	assert.Equal(t, 60*time.Second, cfg.Server.WSIdleTimeout)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_TYPE", "remote")
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("STT_WORKER_COUNT", "8")
	t.Setenv("DEBUG_LOGGING", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "remote", cfg.Store.Type)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 8, cfg.Transcriber.WorkerCount)
	assert.True(t, cfg.Server.DebugLogging)
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("STT_WORKER_COUNT", "not-a-number")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Transcriber.WorkerCount)
}
