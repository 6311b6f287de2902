package entries

import (
	"context"

	"github.com/dmitrijs2005/mywallet/internal/server/models"
)

// Repository stores ledger entries together with their category sets.
// Every mutation runs in a single transaction.
type Repository interface {
	Add(ctx context.Context, entry models.LedgerEntry) (bool, error)
	Update(ctx context.Context, entry models.LedgerEntry) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.LedgerEntry, error)
	GetAll(ctx context.Context) ([]models.LedgerEntry, error)
	Count(ctx context.Context) (int, error)
}
