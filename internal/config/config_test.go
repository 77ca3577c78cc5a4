package config

import (
	"os"
	"testing"
)

func setenv(t *testing.T, k, v string) {
	t.Helper()
	old, had := os.LookupEnv(k)
	if err := os.Setenv(k, v); err != nil {
		t.Fatalf("setenv %s: %v", k, err)
	}
	t.Cleanup(func() {
		if had {
			os.Setenv(k, old)
		} else {
			os.Unsetenv(k)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "ADDR", "API_BASE_URL", "API_TIMEOUT_SECONDS", "DB_DRIVER", "DB_DSN", "LOG_LEVEL", "LOG_FORMAT"} {
		setenv(t, k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:4000/api" {
		t.Errorf("API.BaseURL = %q, want local default", cfg.API.BaseURL)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Errorf("DB.Driver = %q, want sqlite", cfg.DB.Driver)
	}
}

func TestLoad_BaseURLTrailingSlashTrimmed(t *testing.T) {
	setenv(t, "API_BASE_URL", "https://api.example.com/v1/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com/v1" {
		t.Errorf("API.BaseURL = %q, want trailing slash removed", cfg.API.BaseURL)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	setenv(t, "DB_DRIVER", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("Load() with DB_DRIVER=postgres: want error, got nil")
	}
}
