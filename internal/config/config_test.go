package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 0, cfg.HTTP.MaxRetries)
	assert.False(t, cfg.Extract.Lenient)
	assert.False(t, cfg.Rod.Enabled)
	assert.False(t, cfg.Robots.Enabled)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base_url", func(c *Config) { c.BaseURL = "" }},
		{"empty user_agent", func(c *Config) { c.HTTP.UserAgent = "" }},
		{"zero connect timeout", func(c *Config) { c.HTTP.ConnectTimeoutMS = 0 }},
		{"zero total timeout", func(c *Config) { c.HTTP.TotalTimeoutMS = 0 }},
		{"negative retries", func(c *Config) { c.HTTP.MaxRetries = -1 }},
		{"zero rpm", func(c *Config) { c.RateLimit.RPM = 0 }},
		{"backoff min above max", func(c *Config) { c.Backoff.MinMS = 5000 }},
		{"jitter above 100", func(c *Config) { c.Backoff.JitterPct = 150 }},
		{"empty log level", func(c *Config) { c.Observability.LogLevel = "" }},
		{"rod enabled without page timeout", func(c *Config) { c.Rod.Enabled = true; c.Rod.PageTimeoutS = 0 }},
		{"robots enabled without cache ttl", func(c *Config) { c.Robots.Enabled = true; c.Robots.CacheTTLHours = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
base_url: "https://example.com/front"
http:
  user_agent: "custom-agent/2.0"
  connect_timeout_ms: 1000
  total_timeout_ms: 10000
  max_retries: 2
extract:
  lenient: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/front", cfg.BaseURL)
	assert.Equal(t, "custom-agent/2.0", cfg.HTTP.UserAgent)
	assert.Equal(t, 2, cfg.HTTP.MaxRetries)
	assert.True(t, cfg.Extract.Lenient)

	// Untouched sections keep their defaults.
	assert.Equal(t, 250, cfg.Backoff.MinMS)
	assert.Equal(t, 30, cfg.RateLimit.RPM)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: \"\"\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "base_url")
}
