package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/app/gateway"
	orderspostgres "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/adapters/persistence/postgres"
	platformpostgres "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := gateway.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectAndMigrate(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge submission journal")
	}

	cutoff := time.Now().Add(-cfg.JournalRetention)
	purged, err := orderspostgres.NewJournal(db).PurgeBefore(ctx, cutoff)
	if err != nil {
		log.Fatalf("failed to purge submission journal: %v", err)
	}
	logger.Info("submission journal purge completed", slog.Int64("purged", purged), slog.Time("cutoff", cutoff))
}
