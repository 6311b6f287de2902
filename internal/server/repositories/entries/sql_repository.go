// Package entries provides the SQL-backed ledger entry store. An entry owns
// its rows in the categories table; writes touching both tables are wrapped
// in one transaction that commits only when every statement succeeded.
package entries

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/mywallet/internal/dbx"
	"github.com/dmitrijs2005/mywallet/internal/server/models"
	"github.com/jmoiron/sqlx"
)

const selectEntries = `
	SELECT e.id AS id, e.description AS description, e.value AS value, e.date AS date, c.name AS category
	FROM ledger_entries e
	LEFT JOIN categories c ON c.entry_id = e.id
`

// SQLRepository implements Repository over a *sqlx.DB.
type SQLRepository struct {
	db *sqlx.DB
}

// NewSQLRepository constructs a repository bound to db.
func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// Add inserts the entry row and one category row per distinct label.
// If the entry insert writes nothing, categories are skipped and false is
// returned. A failing category insert rolls back the entry as well.
func (r *SQLRepository) Add(ctx context.Context, entry models.LedgerEntry) (bool, error) {
	var written bool

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `INSERT INTO ledger_entries (id, description, value, date)
			VALUES (?, ?, ?, ?)`

		res, err := tx.ExecContext(ctx, tx.Rebind(query),
			entry.ID, entry.Description, entry.Value, entry.Date.UTC())
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		written, err = affected(res)
		if err != nil || !written {
			return err
		}

		return insertCategories(ctx, tx, entry.ID, entry.Categories)
	})
	if err != nil {
		return false, err
	}

	return written, nil
}

// Update rewrites the scalar fields and, when the entry exists, replaces
// its categories wholesale with entry.Categories.
func (r *SQLRepository) Update(ctx context.Context, entry models.LedgerEntry) (bool, error) {
	var written bool

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `UPDATE ledger_entries
			SET description = ?, value = ?, date = ?
			WHERE id = ?`

		res, err := tx.ExecContext(ctx, tx.Rebind(query),
			entry.Description, entry.Value, entry.Date.UTC(), entry.ID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		written, err = affected(res)
		if err != nil || !written {
			return err
		}

		if err := deleteCategories(ctx, tx, entry.ID); err != nil {
			return err
		}

		return insertCategories(ctx, tx, entry.ID, entry.Categories)
	})
	if err != nil {
		return false, err
	}

	return written, nil
}

// Delete removes the entry's categories and then the entry. The result
// reflects only the entry row.
func (r *SQLRepository) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := deleteCategories(ctx, tx, id); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM ledger_entries WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		deleted, err = affected(res)
		return err
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

// GetByID returns the entry with its categories, or nil when absent.
func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.LedgerEntry, error) {
	query := selectEntries + `WHERE e.id = ? ORDER BY c.name`

	var rows []entryRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), id); err != nil {
		return nil, fmt.Errorf("failed to select entry: %w", err)
	}

	result := collect(rows)
	if len(result) == 0 {
		return nil, nil
	}

	return &result[0], nil
}

// GetAll returns every entry, newest first.
func (r *SQLRepository) GetAll(ctx context.Context) ([]models.LedgerEntry, error) {
	query := selectEntries + `ORDER BY e.date DESC, e.id, c.name`

	var rows []entryRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}

	return collect(rows), nil
}

func (r *SQLRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM ledger_entries`); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func insertCategories(ctx context.Context, tx dbx.DBTX, entryID string, labels []string) error {
	labels = distinct(labels)
	if len(labels) == 0 {
		return nil
	}

	b := sq.Insert("categories").Columns("entry_id", "name")
	for _, label := range labels {
		b = b.Values(entryID, label)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build categories insert: %w", err)
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to insert categories: %w", err)
	}

	return nil
}

func deleteCategories(ctx context.Context, tx dbx.DBTX, entryID string) error {
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM categories WHERE entry_id = ?`), entryID); err != nil {
		return fmt.Errorf("failed to delete categories: %w", err)
	}
	return nil
}

func distinct(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}
