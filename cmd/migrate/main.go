package main

import (
	"context"
	"log/slog"
	"os"

	"git.sr.ht/~relay/giftwise-backend/config"
	"git.sr.ht/~relay/giftwise-backend/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx := context.Background()
	slog.Info("Attempting to open database", "path", cfg.DatabasePath)
	db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DatabasePath, "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.Migrate(ctx, db); err != nil {
		slog.Error("migration failed", "err", err)
		os.Exit(1)
	}
	slog.Info("Migration complete. Demo data seeded.", "path", cfg.DatabasePath)
}
