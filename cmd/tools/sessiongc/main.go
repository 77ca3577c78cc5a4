// Command sessiongc removes expired rows from the admin session cache.
// Run it from cron; the console itself never blocks a request on
// cleanup.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/Marat1506/apple-admin/internal/config"
	"github.com/Marat1506/apple-admin/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := session.Open(cfg.DB)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := session.NewStore(db).DeleteExpired(ctx)
	if err != nil {
		log.Fatalf("delete expired sessions: %v", err)
	}
	log.Printf("removed %d expired session(s)", n)
}
