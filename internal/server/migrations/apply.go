package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/mywallet/internal/dbx"
	"github.com/pressly/goose/v3"
)

// Dir returns the embedded migration directory and goose dialect for a
// database/sql driver name.
func Dir(driver string) (dir string, dialect goose.Dialect, err error) {
	switch driver {
	case dbx.DriverSQLite:
		return "sqlite", goose.DialectSQLite3, nil
	case dbx.DriverPostgres:
		return "postgres", goose.DialectPostgres, nil
	default:
		return "", "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// Apply brings the schema for driver up to date. Already applied versions
// are skipped, so calling it on every start is safe.
func Apply(ctx context.Context, db *sql.DB, driver string) error {
	dir, dialect, err := Dir(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(string(dialect)); err != nil {
		return err
	}
	goose.SetLogger(goose.NopLogger())

	return goose.UpContext(ctx, db, dir)
}
