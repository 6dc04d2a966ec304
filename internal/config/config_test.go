package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEV", "1")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Backend.Timeout != 15*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.App.Currency != "DH" || cfg.Session.CookieName != "session" {
		t.Errorf("unexpected app defaults: %+v", cfg.App)
	}
	if cfg.Database.Postgres() {
		t.Error("default DSN is sqlite")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("BACKEND_URL", "https://api.example.test")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "https://a.test,https://b.test")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/missions?sslmode=disable")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.Timeout != 3*time.Second || len(cfg.App.CORSOrigins) != 2 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if !cfg.Database.Postgres() {
		t.Error("postgres URL not detected")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("BACKEND_URL", "not a url")
	_, err := Load()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "BACKEND_URL") || !strings.Contains(err.Error(), "SESSION_SECRET") {
		t.Errorf("error should list every problem: %v", err)
	}

	t.Setenv("BACKEND_TIMEOUT", "soon")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse env") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestPostgresKeyValueDSN(t *testing.T) {
	d := DatabaseConfig{DSN: "host=localhost port=5432 dbname=missions user=u"}
	if !d.Postgres() {
		t.Error("key=value DSN is postgres")
	}
}
