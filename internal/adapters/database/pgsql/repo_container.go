package pgsql

import (
	portsrepo "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds the PostgreSQL-backed repositories.
// The guest store is not database backed and is left for the caller to set.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:    newPgxUserRepository(dbPool),
		LedgerStore: newPgxLedgerStore(dbPool),
	}
}
