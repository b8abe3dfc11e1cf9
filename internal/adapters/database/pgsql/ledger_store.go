package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerStore is the remote LedgerStore: the session, transaction and
// settings repositories over one pool.
type PgxLedgerStore struct {
	BaseRepository
	*PgxSessionRepository
	*PgxTransactionRepository
	*PgxSettingsRepository
}

func newPgxLedgerStore(pool *pgxpool.Pool) *PgxLedgerStore {
	return &PgxLedgerStore{
		BaseRepository:           BaseRepository{Pool: pool},
		PgxSessionRepository:     newPgxSessionRepository(pool),
		PgxTransactionRepository: newPgxTransactionRepository(pool),
		PgxSettingsRepository:    newPgxSettingsRepository(pool),
	}
}

var _ portsrepo.LedgerStore = (*PgxLedgerStore)(nil)

// DeleteOwnerData removes the owner's sessions (transactions cascade),
// any stray transactions and the settings row in one database transaction.
func (s *PgxLedgerStore) DeleteOwnerData(ctx context.Context, ownerID string) (err error) {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = s.Rollback(ctx, tx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM sessions WHERE owner_id = $1;`, ownerID); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM transactions WHERE owner_id = $1;`, ownerID); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM user_settings WHERE owner_id = $1;`, ownerID); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	return s.Commit(ctx, tx)
}
