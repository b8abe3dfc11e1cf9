package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager groups statements that must succeed or fail together,
// such as wiping all of an owner's data.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback is a no-op on a transaction that was already committed.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
