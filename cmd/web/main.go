package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Marat1506/apple-admin/internal/api"
	"github.com/Marat1506/apple-admin/internal/config"
	apphttp "github.com/Marat1506/apple-admin/internal/http"
	"github.com/Marat1506/apple-admin/internal/session"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Log)

	if cfg.SecretKey == "" {
		if cfg.IsProduction() {
			log.Fatal("SECRET_KEY is required in production")
		}
		cfg.SecretKey = randomSecret()
		logger.Warn("SECRET_KEY not set; flash and CSRF cookies will not survive restarts")
	}

	db, err := session.Open(cfg.DB)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}
	if err := session.NewStore(db).Migrate(); err != nil {
		log.Fatalf("migrate session store: %v", err)
	}

	apiClient := api.New(api.NewHTTPClient(cfg.APITimeout()), cfg.API.BaseURL)

	r, err := apphttp.NewRouter(cfg, logger, db, apiClient)
	if err != nil {
		log.Fatalf("build router: %v", err)
	}

	logger.Info("admin console listening",
		slog.String("addr", cfg.Addr),
		slog.String("api_base_url", cfg.API.BaseURL),
	)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("generate secret: %v", err)
	}
	return hex.EncodeToString(b)
}
