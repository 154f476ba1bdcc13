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

	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 3, cfg.APIRetries)
	assert.Equal(t, "default", cfg.Profile)
	assert.Equal(t, "127.0.0.1:4242", cfg.CallbackAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CLOUDBITE_API_BASE_URL", "https://api.cloudbite.example/api")
	t.Setenv("CLOUDBITE_REDIS_ADDR", "localhost:6379")
	t.Setenv("CLOUDBITE_PROFILE", "alice")
	t.Setenv("CLOUDBITE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.cloudbite.example/api", cfg.APIBaseURL)
	assert.Equal(t, "alice", cfg.Profile)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("CLOUDBITE_API_BASE_URL", "not a url")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("CLOUDBITE_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
}
