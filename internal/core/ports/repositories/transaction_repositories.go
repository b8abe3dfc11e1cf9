package repositories

import (
	"context"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// ListTransactionsBySession retrieves a session's transactions, newest first.
	ListTransactionsBySession(ctx context.Context, ownerID, sessionID string) ([]domain.Transaction, error)

	// ListTransactionsByOwner retrieves every transaction the owner has recorded, newest first.
	ListTransactionsByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction appends a transaction to an open session.
	// Returns apperrors.ErrNotFound if the session does not exist for the owner
	// and apperrors.ErrSessionEnded if it has ended.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}
