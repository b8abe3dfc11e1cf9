package domain

import "time"

// Session is a bounded play period during which cash movements are tracked.
type Session struct {
	SessionID   string     `json:"sessionID"`
	OwnerID     string     `json:"ownerID"`
	StartedAt   time.Time  `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt,omitempty"` // Set once when the session ends
	CasinoName  *string    `json:"casinoName,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	BudgetCents *int64     `json:"budgetCents,omitempty"` // Positive when set
	CreatedAt   time.Time  `json:"createdAt"`
}

// IsOpen reports whether the session still accepts transactions.
func (s *Session) IsOpen() bool {
	return s.EndedAt == nil
}

// End marks the session as ended at the given time. It reports false and
// leaves the session untouched if it had already ended.
func (s *Session) End(at time.Time) bool {
	if s.EndedAt != nil {
		return false
	}
	s.EndedAt = &at
	return true
}
