package users

import (
	"context"

	"github.com/dmitrijs2005/mywallet/internal/server/models"
)

// Repository stores user credentials. Lookups return nil, nil when no row
// matches. Mutations report whether a row was written instead of failing.
type Repository interface {
	Add(ctx context.Context, user models.User) (bool, error)
	Update(ctx context.Context, user models.User) (bool, error)
	UpdateHash(ctx context.Context, id, hash string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int, error)
}
