// Package server wires configuration, logging, the backing store and the
// services into an App that front ends (the admin CLI) drive.
package server

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/mywallet/internal/cryptox"
	"github.com/dmitrijs2005/mywallet/internal/dbx"
	"github.com/dmitrijs2005/mywallet/internal/logging"
	"github.com/dmitrijs2005/mywallet/internal/server/config"
	"github.com/dmitrijs2005/mywallet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mywallet/internal/server/services"
	"github.com/jmoiron/sqlx"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager

	Users   *services.UserService
	Entries *services.EntryService
}

// NewApp opens the configured store, makes sure the schema exists and builds
// the services. Logs are written to logOut. The caller must Close the App.
func NewApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(cfg.LogFormat, logOut, false)

	db, err := dbx.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher := cryptox.NewPasswordHasher(cfg.HashIterations)
	rm := repomanager.NewSQLRepositoryManager(db, hasher)

	if err := rm.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("schema init error: %w", err)
	}

	logger.Debug(ctx, "store ready", "driver", cfg.DatabaseDriver)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repomanager: rm,
		Users:       services.NewUserService(rm, hasher, cfg, logger),
		Entries:     services.NewEntryService(rm, logger),
	}, nil
}

// Init initializes the schema and, when seed is set, inserts the
// demonstration rows. Both steps are idempotent.
func (app *App) Init(ctx context.Context, seed bool) error {
	if err := app.repomanager.RunMigrations(ctx); err != nil {
		return fmt.Errorf("schema init error: %w", err)
	}
	app.logger.Info(ctx, "schema initialized")

	if seed {
		return app.Seed(ctx)
	}
	return nil
}

// Seed inserts demonstration rows into empty tables.
func (app *App) Seed(ctx context.Context) error {
	if err := app.repomanager.Seed(ctx); err != nil {
		return fmt.Errorf("seed error: %w", err)
	}
	app.logger.Info(ctx, "demo data seeded")
	return nil
}

func (app *App) Logger() logging.Logger {
	return app.logger
}

func (app *App) Close() error {
	return app.db.Close()
}
