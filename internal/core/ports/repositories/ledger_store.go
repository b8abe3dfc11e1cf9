package repositories

import "context"

// OwnerDataEraser removes everything stored for an owner.
type OwnerDataEraser interface {
	// DeleteOwnerData deletes all sessions, transactions and settings of the owner.
	DeleteOwnerData(ctx context.Context, ownerID string) error
}

// LedgerStore is the storage capability the session and profile services
// are written against. Both the remote (PostgreSQL) and the local guest
// document store implement it.
type LedgerStore interface {
	SessionReader
	SessionWriter
	TransactionReader
	TransactionWriter
	SettingsReader
	SettingsWriter
	OwnerDataEraser
}
