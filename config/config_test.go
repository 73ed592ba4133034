package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("API_BASE_URL", "not a url")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("API_BASE_URL", "http://localhost:5000")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.BaseURL)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:5000")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("TOKEN_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, ".backoffice-token", cfg.TokenFile)
}

func TestLoadTimeoutFormats(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:5000")

	t.Setenv("REQUEST_TIMEOUT", "30s")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)

	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "45")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
}
