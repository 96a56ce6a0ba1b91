package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default level info, got %s", cfg.Logging.Level)
	}
	if cfg.Analysis.WindowDays != 7 {
		t.Errorf("expected default window 7 days, got %d", cfg.Analysis.WindowDays)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "postgres://localhost/adaudit")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ANALYSIS_USER_IDS", "1, 2,3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.Database.Driver)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("expected 5s read timeout, got %v", cfg.Server.ReadTimeout)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.Server.AllowedOrigins)
	}
	if len(cfg.Analysis.UserIDs) != 3 || cfg.Analysis.UserIDs[2] != 3 {
		t.Errorf("unexpected user ids: %v", cfg.Analysis.UserIDs)
	}
}

func TestLoadValidation(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "70000")
		if _, err := Load(); err == nil {
			t.Error("expected error for out-of-range port")
		}
	})

	t.Run("bad driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")
		if _, err := Load(); err == nil {
			t.Error("expected error for unsupported driver")
		}
	})

	t.Run("bad window", func(t *testing.T) {
		t.Setenv("ANALYSIS_WINDOW_DAYS", "0")
		if _, err := Load(); err == nil {
			t.Error("expected error for zero window")
		}
	})
}
