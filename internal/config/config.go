// Package config loads environment driven settings for the workspace service.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all environment backed configuration for workspace-api.
type Config struct {
	// HTTP Server
	ServiceName        string        `env:"SERVICE_NAME" envDefault:"workspace-api"`
	Environment        string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort           int           `env:"HTTP_PORT" envDefault:"8480"`
	CORSAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost,http://localhost:3000"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Observability / Logging
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"console"`
	EnableTracing bool   `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Auth
	AuthEnabled  bool   `env:"AUTH_ENABLED" envDefault:"false"`
	AuthJWKSURL  string `env:"AUTH_JWKS_URL"`
	AuthIssuer   string `env:"AUTH_ISSUER"`
	AuthAudience string `env:"AUTH_AUDIENCE"`

	// Generation
	GenerationCacheSize int `env:"GENERATION_CACHE_SIZE" envDefault:"256"`
	DefaultMaxModules   int `env:"DEFAULT_MAX_MODULES" envDefault:"8"`

	// Features
	EnableSwagger bool `env:"ENABLE_SWAGGER" envDefault:"true"`
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if cfg.AuthEnabled {
		if strings.TrimSpace(cfg.AuthJWKSURL) == "" {
			return nil, fmt.Errorf("AUTH_JWKS_URL is required when AUTH_ENABLED is true")
		}
		if strings.TrimSpace(cfg.AuthIssuer) == "" {
			return nil, fmt.Errorf("AUTH_ISSUER is required when AUTH_ENABLED is true")
		}
	}

	if cfg.GenerationCacheSize < 0 {
		return nil, fmt.Errorf("GENERATION_CACHE_SIZE must not be negative")
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// AllowedOrigins splits the configured CORS origin list. A single "*" allows
// any origin.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
