package repomanager

import (
	"context"

	"github.com/dmitrijs2005/mywallet/internal/server/repositories/entries"
	"github.com/dmitrijs2005/mywallet/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Seed(ctx context.Context) error
	Users() users.Repository
	Entries() entries.Repository
}

// Hasher produces the credential hash stored for seeded users.
type Hasher interface {
	Hash(secret string) (string, error)
}
