package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/finance-api/internal/config"
	"github.com/phrazzld/finance-api/internal/platform/memory"
	"github.com/phrazzld/finance-api/internal/platform/postgres"
	"github.com/phrazzld/finance-api/internal/service"
	"github.com/phrazzld/finance-api/internal/service/auth"
	"github.com/phrazzld/finance-api/internal/store"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB // nil with the memory driver

	userStore  store.UserStore
	entryStore store.EntryStore

	jwtService   auth.JWTService
	userService  service.UserService
	entryService service.EntryService
}

// newApplication wires stores and services for the configured driver.
// db must be non-nil for the postgres driver.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		users := memory.NewUserStore(logger)
		app.userStore = users
		app.entryStore = memory.NewEntryStore(users, logger)
	case config.DriverPostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres driver requires a database connection")
		}
		app.userStore = postgres.NewPostgresUserStore(db, logger)
		app.entryStore = postgres.NewPostgresEntryStore(db, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	credentials, err := auth.NewCredentials(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password scheme: %w", err)
	}

	app.userService, err = service.NewUserService(app.userStore, credentials, credentials, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.entryService, err = service.NewEntryService(app.entryStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create entry service: %w", err)
	}

	return app, nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
