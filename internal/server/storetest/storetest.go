// Package storetest opens throwaway SQLite stores with the full schema
// applied, for repository and service tests.
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/mywallet/internal/dbx"
	"github.com/dmitrijs2005/mywallet/internal/server/migrations"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// NewSQLite returns a migrated SQLite database living in t.TempDir().
// It is closed when the test ends.
func NewSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx := context.Background()
	db, err := dbx.Open(ctx, dbx.DriverSQLite, filepath.Join(t.TempDir(), "mywallet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Apply(ctx, db.DB, dbx.DriverSQLite))

	return db
}
