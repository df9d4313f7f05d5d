package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/remnant-app/remnant-api/internal/config"
	"github.com/remnant-app/remnant-api/internal/platform/elevenlabs"
	"github.com/remnant-app/remnant-api/internal/platform/postgres"
	"github.com/remnant-app/remnant-api/internal/service"
	"github.com/remnant-app/remnant-api/internal/service/auth"
	"github.com/remnant-app/remnant-api/internal/store"
	"github.com/remnant-app/remnant-api/internal/voice"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore      store.UserStore
	familyStore    store.FamilyStore
	recordingStore store.RecordingStore

	// Services
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	familyService    service.FamilyService
	memoryService    service.MemoryService
	voiceService     service.VoiceService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies that must be established before
// application wiring: configuration, logger, and database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher(bcrypt.DefaultCost)
	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewUserStore(db, logger)
	app.familyStore = postgres.NewFamilyStore(db, logger)
	app.recordingStore = postgres.NewRecordingStore(db, logger)

	provider, err := elevenlabs.NewClient(cfg.Voice, logger.With("component", "voice_provider"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize voice provider: %w", err)
	}
	logger.Info("Voice provider initialized", "base_url", cfg.Voice.BaseURL)

	app.familyService = service.NewFamilyService(db, app.familyStore, logger)
	app.memoryService = service.NewMemoryService(db, app.recordingStore, app.familyStore, logger)
	app.voiceService = service.NewVoiceService(
		app.userStore,
		provider,
		provider,
		voice.DefaultCatalog(),
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
