// Package repomanager provides a concrete RepositoryManager over a sqlx
// handle, wiring together repository constructors, the schema initializer
// (goose migrations) and demonstration seed data.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/mywallet/internal/server/migrations"
	"github.com/dmitrijs2005/mywallet/internal/server/repositories/entries"
	"github.com/dmitrijs2005/mywallet/internal/server/repositories/users"
	"github.com/jmoiron/sqlx"
)

// SQLRepositoryManager vends SQL-backed repositories sharing one handle.
type SQLRepositoryManager struct {
	db      *sqlx.DB
	hasher  Hasher
	users   *users.SQLRepository
	entries *entries.SQLRepository
}

// applyMigrations is a seam for testing migrations.Apply.
var applyMigrations = func(ctx context.Context, db *sql.DB, driver string) error {
	return migrations.Apply(ctx, db, driver)
}

// NewSQLRepositoryManager constructs a RepositoryManager bound to db. The
// hasher is only used by Seed.
func NewSQLRepositoryManager(db *sqlx.DB, hasher Hasher) *SQLRepositoryManager {
	return &SQLRepositoryManager{
		db:      db,
		hasher:  hasher,
		users:   users.NewSQLRepository(db),
		entries: entries.NewSQLRepository(db),
	}
}

// Users returns the user store.
func (m *SQLRepositoryManager) Users() users.Repository {
	return m.users
}

// Entries returns the ledger entry store.
func (m *SQLRepositoryManager) Entries() entries.Repository {
	return m.entries
}

// RunMigrations creates the users, ledger_entries and categories tables if
// they are missing. It never drops or alters existing data and is safe to
// call on every start; errors are returned as is.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	return applyMigrations(ctx, m.db.DB, m.db.DriverName())
}

// Seed fills each table with demonstration rows, but only while that table
// is empty. Calling it repeatedly leaves the row counts unchanged.
func (m *SQLRepositoryManager) Seed(ctx context.Context) error {
	n, err := m.users.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		if err := m.seedUsers(ctx); err != nil {
			return err
		}
	}

	n, err = m.entries.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		if err := m.seedEntries(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (m *SQLRepositoryManager) seedUsers(ctx context.Context) error {
	hash, err := m.hasher.Hash(DemoPassword)
	if err != nil {
		return fmt.Errorf("seed hash error: %w", err)
	}

	user := demoUser
	user.Hash = hash

	if _, err := m.users.Add(ctx, user); err != nil {
		return fmt.Errorf("seed user error: %w", err)
	}
	return nil
}

func (m *SQLRepositoryManager) seedEntries(ctx context.Context) error {
	for _, e := range demoEntries() {
		if _, err := m.entries.Add(ctx, e); err != nil {
			return fmt.Errorf("seed entry %s error: %w", e.ID, err)
		}
	}
	return nil
}
