package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/apperrors"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/utils"
)

var errAmountRequired = fmt.Errorf("amount or amountCents is required: %w", apperrors.ErrValidation)

// RecordTransactionRequest defines the data needed to log a cash-in or cash-out.
// Exactly one of Amount (a dollar string such as "$20.50") or AmountCents is expected;
// AmountCents wins when both are sent.
type RecordTransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=cash_in cash_out"`
	Amount      string  `json:"amount" binding:"omitempty,money"`
	AmountCents *int64  `json:"amountCents" binding:"omitempty,gt=0"`
	Note        *string `json:"note" binding:"omitempty,max=500"`
	Game        *string `json:"game" binding:"omitempty,max=120"`
}

// ResolveAmountCents returns the requested amount in cents.
func (r RecordTransactionRequest) ResolveAmountCents() (int64, error) {
	if r.AmountCents != nil {
		return *r.AmountCents, nil
	}
	if strings.TrimSpace(r.Amount) == "" {
		return 0, errAmountRequired
	}
	return utils.ParseMoneyToCents(r.Amount)
}

// TransactionResponse is the API view of a transaction.
type TransactionResponse struct {
	TransactionID   string    `json:"transactionID"`
	SessionID       string    `json:"sessionID"`
	Type            string    `json:"type"`
	AmountCents     int64     `json:"amountCents"`
	Amount          string    `json:"amount"`
	OccurredAt      time.Time `json:"occurredAt"`
	Note            *string   `json:"note,omitempty"`
	Game            *string   `json:"game,omitempty"`
	RunningNetCents *int64    `json:"runningNetCents,omitempty"`
	RunningNet      *string   `json:"runningNet,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its API view.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		SessionID:     t.SessionID,
		Type:          string(t.Type),
		AmountCents:   t.AmountCents,
		Amount:        utils.FormatMoney(t.AmountCents),
		OccurredAt:    t.OccurredAt,
		Note:          t.Note,
		Game:          t.Game,
	}
}
