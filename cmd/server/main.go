// Package main implements the entry point for the Remnant API server,
// which backs the family voice-message application: accounts, families,
// shared audio memories, and voice cloning through the configured provider.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/remnant-app/remnant-api/internal/config"
	"github.com/remnant-app/remnant-api/internal/platform/logger"
	"github.com/remnant-app/remnant-api/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// run loads configuration, connects the database, applies migrations, wires
// the application, and serves until shutdown.
func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := postgres.MigrateUp(ctx, db, appLogger); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
