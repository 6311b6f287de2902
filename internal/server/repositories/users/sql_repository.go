// Package users provides the SQL-backed user store. Queries are written
// with '?' placeholders and rebound for the active driver.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mywallet/internal/common"
	"github.com/dmitrijs2005/mywallet/internal/dbx"
	"github.com/dmitrijs2005/mywallet/internal/server/models"
)

// SQLRepository implements Repository over a dbx.DBTX (*sqlx.DB or *sqlx.Tx).
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Add inserts user. A unique-key conflict (id or email) is reported as an
// error wrapping both common.ErrDuplicateKey and the driver error.
func (r *SQLRepository) Add(ctx context.Context, user models.User) (bool, error) {
	query := `INSERT INTO users (id, name, email, hash)
		VALUES (?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), user.ID, user.Name, user.Email, user.Hash)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return false, fmt.Errorf("%w: %w", common.ErrDuplicateKey, err)
		}
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected(res)
}

// Update changes only the name of the user with user.ID.
func (r *SQLRepository) Update(ctx context.Context, user models.User) (bool, error) {
	query := `UPDATE users SET name = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), user.Name, user.ID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected(res)
}

// UpdateHash replaces the stored credential hash, used after a successful
// login against a hash with outdated parameters.
func (r *SQLRepository) UpdateHash(ctx context.Context, id, hash string) (bool, error) {
	query := `UPDATE users SET hash = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), hash, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected(res)
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, hash FROM users WHERE id = ?`, id)
}

// GetByEmail matches the stored email exactly, case included.
func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, hash FROM users WHERE email = ?`, email)
}

func (r *SQLRepository) GetAll(ctx context.Context) ([]models.User, error) {
	result := []models.User{}
	query := `SELECT id, name, email, hash FROM users ORDER BY email`

	if err := r.db.SelectContext(ctx, &result, query); err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}

	err := r.db.GetContext(ctx, user, r.db.Rebind(query), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}
