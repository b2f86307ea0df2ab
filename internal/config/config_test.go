package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_MODE", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SESSION_BACKEND", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.IsDev() || cfg.Port != "3000" {
		t.Errorf("Unexpected defaults: mode=%s port=%s", cfg.AppMode, cfg.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Session.Backend != "db" {
		t.Errorf("Unexpected storage defaults: %+v %+v", cfg.Database, cfg.Session)
	}
	if cfg.Credential.TTL != time.Hour {
		t.Errorf("Expected 1h credential TTL, got %v", cfg.Credential.TTL)
	}
	if cfg.Seed.Agents != 5 || cfg.Seed.Cases != 150 {
		t.Errorf("Unexpected seed defaults: %+v", cfg.Seed)
	}
	if cfg.GetAllowedOrigins() != "*" {
		t.Errorf("Expected permissive CORS in dev, got %q", cfg.GetAllowedOrigins())
	}
}

func TestLoad_ProdPrefixes(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("PROD_DB_HOST", "db.internal")
	t.Setenv("PROD_COOKIE_SECURE", "true")
	t.Setenv("CREDENTIAL_TTL_MINUTES", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Host != "db.internal" || !cfg.Cookie.Secure {
		t.Errorf("Prod-prefixed settings not applied: %+v %+v", cfg.Database, cfg.Cookie)
	}
	if cfg.Credential.TTL != 15*time.Minute {
		t.Errorf("Expected 15m TTL, got %v", cfg.Credential.TTL)
	}
	if got := buildDSN(cfg.Database); got != "root:@tcp(db.internal:3306)/esolve?charset=utf8mb4&parseTime=True&loc=Local" {
		t.Errorf("Unexpected DSN %q", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"APP_MODE", "staging"},
		{"DB_DRIVER", "postgres"},
		{"SESSION_BACKEND", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
