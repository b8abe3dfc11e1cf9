package domain

import "time"

// UserSettings holds account-wide preferences.
type UserSettings struct {
	OwnerID           string    `json:"ownerID"`
	GlobalBudgetCents *int64    `json:"globalBudgetCents,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
