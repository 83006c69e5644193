package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/kanban/internal/dbx"
	"github.com/dmitrijs2005/kanban/internal/server/repositories/cards"
	"github.com/dmitrijs2005/kanban/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/kanban/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out the same in-process stores regardless of
// the DBTX passed in. Atomicity comes from the stores' own locks.
type MemoryRepositoryManager struct {
	users         *users.MemoryRepository
	refreshTokens *refreshtokens.MemoryRepository
	cards         *cards.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:         users.NewMemoryRepository(),
		refreshTokens: refreshtokens.NewMemoryRepository(),
		cards:         cards.NewMemoryRepository(),
	}
}

// RunMigrations is a no-op; there is no schema.
func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}

func (m *MemoryRepositoryManager) Cards(dbx.DBTX) cards.Repository {
	return m.cards
}
