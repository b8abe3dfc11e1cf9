package domain

import (
	"fmt"
	"time"
)

// TransactionType indicates whether chips were bought or cashed.
type TransactionType string

const (
	CashIn  TransactionType = "cash_in"
	CashOut TransactionType = "cash_out"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == CashIn || t == CashOut
}

// Transaction is a single cash-in (buy-in) or cash-out event within a session.
// Transactions are immutable once recorded.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	SessionID     string          `json:"sessionID"`
	OwnerID       string          `json:"ownerID"`
	Type          TransactionType `json:"type"`
	AmountCents   int64           `json:"amountCents"` // Always > 0
	OccurredAt    time.Time       `json:"occurredAt"`
	Note          *string         `json:"note,omitempty"`
	Game          *string         `json:"game,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// SignedCents returns the amount as it affects the player's net:
// positive for cash out, negative for cash in.
func (t Transaction) SignedCents() int64 {
	if t.Type == CashOut {
		return t.AmountCents
	}
	return -t.AmountCents
}

// Validate checks the invariants every stored transaction must hold.
func (t Transaction) Validate() error {
	if !t.Type.IsValid() {
		return fmt.Errorf("unknown transaction type %q", t.Type)
	}
	if t.AmountCents <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	if t.SessionID == "" {
		return fmt.Errorf("session ID is required")
	}
	return nil
}
