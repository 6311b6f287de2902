package dbx

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mywallet/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// sqlitePragmas are appended to every SQLite DSN that does not set them.
// Timestamps are written in the "sqlite" layout so that ordering by the
// stored text matches chronological order.
var sqlitePragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
	"_time_format=sqlite",
}

// Open opens the backing store for driver and verifies it is reachable.
// The returned handle hands out one connection per unit of work; callers
// own it and must Close it.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite:
		if path, ok := sqliteFilePath(dsn); ok {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return nil, fmt.Errorf("db dir error: %w", err)
			}
		}
		dsn = SQLiteDSN(dsn)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return db, nil
}

// SQLiteDSN returns dsn with the connection pragmas the stores rely on.
// Parameters already present in dsn are left untouched.
func SQLiteDSN(dsn string) string {
	var b strings.Builder
	b.WriteString(dsn)

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	for _, p := range sqlitePragmas {
		if strings.Contains(dsn, p) {
			continue
		}
		b.WriteString(sep)
		b.WriteString(p)
		sep = "&"
	}

	return b.String()
}

// sqliteFilePath extracts the database file from a SQLite DSN. It reports
// false for in-memory databases.
func sqliteFilePath(dsn string) (string, bool) {
	path, query, _ := strings.Cut(dsn, "?")
	path = strings.TrimPrefix(path, "file:")
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return "", false
	}
	return path, true
}
