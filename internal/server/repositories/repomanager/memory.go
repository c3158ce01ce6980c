package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/thingful/internal/dbx"
	"github.com/dmitrijs2005/thingful/internal/server/repositories/users"
)

// InMemoryRepositoryManager hands out one shared process-local store and
// ignores the DBTX it is given.
type InMemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

// RunMigrations is a no-op; there is no schema.
func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func NewInMemoryRepositoryManager() (RepositoryManager, error) {
	return &InMemoryRepositoryManager{users: users.NewMemoryRepository()}, nil
}
