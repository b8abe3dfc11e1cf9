package domain

import "time"

// Totals are the derived cash-in/cash-out sums for a set of transactions.
// They are always recomputed from transactions and never stored.
type Totals struct {
	InCents  int64 `json:"totalInCents"`
	OutCents int64 `json:"totalOutCents"`
	NetCents int64 `json:"netCents"` // OutCents - InCents; positive means the player is ahead
}

// SessionWithTotals pairs a session with its computed totals.
type SessionWithTotals struct {
	Session
	Totals
}

// SessionDetail is everything shown on a single session view.
type SessionDetail struct {
	Session              Session       `json:"session"`
	Transactions         []Transaction `json:"transactions"` // Newest first
	RunningNetCents      []int64       `json:"runningNetCents"`
	Totals               Totals        `json:"totals"`
	BudgetRemainingCents *int64        `json:"budgetRemainingCents,omitempty"`
}

// DateGroup buckets items sharing the same local calendar date.
type DateGroup[T any] struct {
	DateKey string `json:"dateKey"` // 2006-01-02
	Label   string `json:"label"`
	Items   []T    `json:"items"`
}

// Dashboard lists sessions grouped by start date together with all-time totals.
type Dashboard struct {
	Groups        []DateGroup[SessionWithTotals] `json:"groups"`
	AllTimeTotals Totals                         `json:"allTimeTotals"`
}

// DailyTotal is the aggregate of one local calendar day.
type DailyTotal struct {
	DateKey string `json:"dateKey"`
	Label   string `json:"label"`
	Totals
}

// Profile is the account summary: lifetime totals, daily history and budget.
type Profile struct {
	AllTimeTotals        Totals       `json:"allTimeTotals"`
	DailyTotals          []DailyTotal `json:"dailyTotals"` // Newest first
	GlobalBudgetCents    *int64       `json:"globalBudgetCents,omitempty"`
	TotalLossCents       int64        `json:"totalLossCents"`
	BudgetRemainingCents *int64       `json:"budgetRemainingCents,omitempty"`
	GeneratedAt          time.Time    `json:"generatedAt"`
}
