package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/kanban/internal/dbx"
	"github.com/dmitrijs2005/kanban/internal/server/repositories/cards"
	"github.com/dmitrijs2005/kanban/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/kanban/internal/server/repositories/users"
	_ "modernc.org/sqlite"
)

// MemoryDSN selects the in-process backend instead of PostgreSQL.
const MemoryDSN = "memory://"

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Cards(db dbx.DBTX) cards.Repository
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Open connects to the store named by dsn and returns the connection used for
// transactions together with the matching manager. The memory backend still
// needs a *sql.DB so services can run dbx.WithTx unchanged; an in-memory
// SQLite handle provides it.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	if strings.HasPrefix(dsn, MemoryDSN) {
		db, err := sqlOpen("sqlite", ":memory:")
		if err != nil {
			return nil, nil, fmt.Errorf("open memory store: %w", err)
		}
		return db, NewMemoryRepositoryManager(), nil
	}

	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	m, err := NewPostgresRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, m, nil
}
