package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 3000, cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 5*time.Minute, cfg.TokenCacheTTL)
	assert.Equal(t, time.Hour, cfg.SourceCacheTTL)
	assert.True(t, cfg.RateLimitEnabled)
	assert.NotEmpty(t, cfg.UpstreamUserAgent)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8088")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TOKEN_CACHE_TTL_SECONDS", "60")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("CHARACTER_SERVICE_BASE_URL", "http://localhost:9999/character/v5")

	cfg := Load()

	assert.Equal(t, 8088, cfg.ServerPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.TokenCacheTTL)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, "http://localhost:9999/character/v5", cfg.CharacterServiceBaseURL)
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		expected string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.expected, cfg.GetGinMode())
		})
	}
}
