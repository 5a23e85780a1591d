package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the memo service.
// Environment variables are parsed from the MEMO_ prefix,
// e.g. MEMO_HTTP_PORT, MEMO_DB_DRIVER, MEMO_GEMINI_API_KEY.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Store configuration. Driver is sqlite (default, local file) or postgres.
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"memoflow.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Identity provider: static (local development) or google (ID-token verification).
	IdentityProvider  string `envconfig:"IDENTITY_PROVIDER" default:"static"`
	GoogleClientID    string `envconfig:"GOOGLE_CLIENT_ID" default:""`
	StaticUserID      string `envconfig:"STATIC_USER_ID" default:"memoflow-dev"`
	StaticDisplayName string `envconfig:"STATIC_DISPLAY_NAME" default:"Local Developer"`

	// Summarization. The credential is read once at startup; when empty the
	// feature stays disabled for the whole session.
	GeminiAPIKey    string `envconfig:"GEMINI_API_KEY" default:""`
	SummarizerModel string `envconfig:"SUMMARIZER_MODEL" default:"gemini-1.5-pro"`

	// Health probing
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"5"`
}

// ResolveDefaults validates the closed enum-ish fields.
func (c *Config) ResolveDefaults() error {
	allowedDB := map[string]bool{"sqlite": true, "postgres": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("MEMO_POSTGRES_DSN is required when DB_DRIVER=postgres")
	}

	allowedIdentity := map[string]bool{"static": true, "google": true}
	if !allowedIdentity[c.IdentityProvider] {
		return fmt.Errorf("unsupported IDENTITY_PROVIDER: %s", c.IdentityProvider)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("MEMO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		Environment:               EnvTesting,
		HTTPPort:                  8080,
		DBDriver:                  "sqlite",
		SQLitePath:                ":memory:",
		IdentityProvider:          "static",
		StaticUserID:              "test-user",
		StaticDisplayName:         "Test User",
		SummarizerModel:           "gemini-1.5-pro",
		HealthIntervalSeconds:     30,
		HealthProbeTimeoutSeconds: 5,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool { return c.Environment == EnvTesting }

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool { return c.Environment == EnvProduction }

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }

// SummarizerEnabled reports whether a summarization credential was configured.
func (c *Config) SummarizerEnabled() bool { return c.GeminiAPIKey != "" }
