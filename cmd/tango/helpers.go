package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mfurukawa/tango/internal/config"
	"github.com/mfurukawa/tango/internal/database"
)

const databasePingAttempts = 5

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func openDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.WaitForPing(ctx, db, databasePingAttempts); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.WaitForPing() > %w", err)
	}
	return db, nil
}
