// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// AuthServiceURL is the platform endpoint exchanging a session credential
	// for a short-lived bearer token.
	AuthServiceURL string
	// CharacterServiceBaseURL is the base URL of the platform's character
	// service (items, spells, character data).
	CharacterServiceBaseURL string
	// SiteConfigURL is the public endpoint listing source books.
	SiteConfigURL string
	// UpstreamUserAgent identifies this relay on every outbound platform call.
	UpstreamUserAgent string
	// UpstreamTimeout bounds every outbound platform call.
	UpstreamTimeout time.Duration

	// TokenCacheTTL is how long exchanged bearer tokens are reused. Kept short
	// to respect the platform's intended token lifetime.
	TokenCacheTTL time.Duration
	// SourceCacheTTL is how long the source-book catalog is cached. Sources
	// change far less often than user content, so this TTL is long.
	SourceCacheTTL time.Duration
	// ItemCacheTTL is how long enhanced item results are cached per credential.
	ItemCacheTTL time.Duration
	// SpellCacheTTL is how long merged spell results are cached per credential.
	SpellCacheTTL time.Duration

	// RateLimitEnabled indicates whether per-client rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for per-client rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 3000),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Upstream platform
		AuthServiceURL: env.GetString(
			"AUTH_SERVICE_URL",
			"https://auth-service.dndbeyond.com/v1/cobalt-token",
		),
		CharacterServiceBaseURL: env.GetString(
			"CHARACTER_SERVICE_BASE_URL",
			"https://character-service.dndbeyond.com/character/v5",
		),
		SiteConfigURL: env.GetString(
			"SITE_CONFIG_URL",
			"https://www.dndbeyond.com/api/config/json",
		),
		UpstreamUserAgent: env.GetString("UPSTREAM_USER_AGENT", "vttbridge-relay/1.0"),
		UpstreamTimeout:   env.GetDuration("UPSTREAM_TIMEOUT_SECONDS", 30, time.Second),

		// Cache TTLs
		TokenCacheTTL:  env.GetDuration("TOKEN_CACHE_TTL_SECONDS", 300, time.Second),
		SourceCacheTTL: env.GetDuration("SOURCE_CACHE_TTL_SECONDS", 3600, time.Second),
		ItemCacheTTL:   env.GetDuration("ITEM_CACHE_TTL_SECONDS", 3600, time.Second),
		SpellCacheTTL:  env.GetDuration("SPELL_CACHE_TTL_SECONDS", 3600, time.Second),

		// Rate Limiting
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 5.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", true),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", "*"),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "relay"),
		MetricsPort:      env.GetInt("METRICS_PORT", 3001),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
