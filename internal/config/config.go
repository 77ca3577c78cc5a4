package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the console reads from the environment.
// main loads .env first (godotenv), real deployments set env vars.
type Config struct {
	Env  string `envconfig:"APP_ENV" default:"development"`
	Addr string `envconfig:"ADDR" default:":8080"`

	// SecretKey signs flash and CSRF cookies. Empty means a random
	// per-process key is generated at startup (dev only).
	SecretKey    string `envconfig:"SECRET_KEY"`
	CookieSecure bool   `envconfig:"COOKIE_SECURE"`

	API APIConfig
	DB  DBConfig
	Log LogConfig
}

// APIConfig selects the storefront REST API the console drives.
type APIConfig struct {
	BaseURL        string `envconfig:"API_BASE_URL" default:"http://127.0.0.1:4000/api"`
	TimeoutSeconds int    `envconfig:"API_TIMEOUT_SECONDS" default:"15"`
}

// DBConfig configures the local session store.
type DBConfig struct {
	Driver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"DB_DSN" default:"console.db"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.DB.Driver))
	switch cfg.DB.Driver {
	case "sqlite", "mysql":
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q (expected sqlite|mysql)", cfg.DB.Driver)
	}

	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 15
	}
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL must not be blank")
	}

	return &cfg, nil
}

func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

func (c *Config) IsProduction() bool { return c.Env == "production" }
