package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/apperrors"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	portsrepo "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, session_id, owner_id, type, amount_cents, occurred_at, note, game, created_at`

// transactionsNewestFirst orders by occurrence, then by insertion sequence
// for equal timestamps.
const transactionsNewestFirst = `ORDER BY occurred_at DESC, seq DESC`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.TransactionReader = (*PgxTransactionRepository)(nil)
	_ portsrepo.TransactionWriter = (*PgxTransactionRepository)(nil)
)

// SaveTransaction inserts only while the owner's session exists and is open.
// When nothing is inserted the session is re-read to report why.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		SELECT $1::text, $2::text, $3::text, $4::text, $5::bigint, $6::timestamptz, $7::text, $8::text, $9::timestamptz
		WHERE EXISTS (
			SELECT 1 FROM sessions
			WHERE session_id = $2 AND owner_id = $3 AND ended_at IS NULL
		);
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		txn.TransactionID,
		txn.SessionID,
		txn.OwnerID,
		string(txn.Type),
		txn.AmountCents,
		txn.OccurredAt,
		txn.Note,
		txn.Game,
		txn.CreatedAt,
	)
	if err != nil {
		return mapPgError(err, "failed to save transaction")
	}
	if cmdTag.RowsAffected() == 1 {
		return nil
	}

	var endedAt *time.Time
	err = r.Pool.QueryRow(ctx,
		`SELECT ended_at FROM sessions WHERE session_id = $1 AND owner_id = $2;`,
		txn.SessionID, txn.OwnerID,
	).Scan(&endedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("session %s: %w", txn.SessionID, apperrors.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check session state: %w", err)
	}
	return fmt.Errorf("session %s: %w", txn.SessionID, apperrors.ErrSessionEnded)
}

func (r *PgxTransactionRepository) ListTransactionsBySession(ctx context.Context, ownerID, sessionID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE session_id = $1 AND owner_id = $2
		` + transactionsNewestFirst + `;
	`
	return r.queryTransactions(ctx, query, sessionID, ownerID)
}

func (r *PgxTransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = $1
		` + transactionsNewestFirst + `;
	`
	return r.queryTransactions(ctx, query, ownerID)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		var txnType string
		err := rows.Scan(
			&t.TransactionID,
			&t.SessionID,
			&t.OwnerID,
			&txnType,
			&t.AmountCents,
			&t.OccurredAt,
			&t.Note,
			&t.Game,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		t.Type = domain.TransactionType(txnType)
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}
