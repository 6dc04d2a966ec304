// Package config provides application configuration loaded from environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Session  SessionConfig
	Database DatabaseConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
}

// BackendConfig points at the mission REST backend.
type BackendConfig struct {
	URL     string        `env:"BACKEND_URL" envDefault:"http://localhost:8081"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
}

// SessionConfig holds the session cookie settings.
type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET"`
	CookieName string        `env:"SESSION_COOKIE" envDefault:"session"`
	Secure     bool          `env:"SESSION_SECURE" envDefault:"false"`
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"12h"`
}

// DatabaseConfig holds the staging store connection string.
type DatabaseConfig struct {
	// DSN is a SQLite path (default) or a PostgreSQL URL / key=value list.
	DSN string `env:"DATABASE_DSN" envDefault:"file:missions.db?cache=shared"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev           bool     `env:"DEV" envDefault:"false"`
	Currency      string   `env:"CURRENCY" envDefault:"DH"`
	CORSOrigins   []string `env:"CORS_ORIGINS" envSeparator:","`
	MaxUploadSize int64    `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// Postgres reports whether the DSN targets PostgreSQL.
func (d DatabaseConfig) Postgres() bool {
	dsn := strings.TrimSpace(d.DSN)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return true
	}
	return strings.Contains(dsn, "host=") && strings.Contains(dsn, "dbname=")
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv fills target from the process environment.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	var errs []error
	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("BACKEND_URL must be an absolute http(s) URL, got %q", c.Backend.URL))
	}
	if c.Backend.Timeout <= 0 {
		errs = append(errs, errors.New("BACKEND_TIMEOUT must be positive"))
	}
	if c.Session.Secret == "" && !c.App.Dev {
		errs = append(errs, errors.New("SESSION_SECRET is required outside DEV mode"))
	}
	if c.App.MaxUploadSize <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	return errors.Join(errs...)
}
