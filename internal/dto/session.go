package dto

import (
	"strings"
	"time"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/utils"
)

// CreateSessionRequest defines the data needed to start a session.
type CreateSessionRequest struct {
	CasinoName *string `json:"casinoName" binding:"omitempty,max=120"`
}

// UpdateNotesRequest replaces a session's notes. Blank notes clear them.
type UpdateNotesRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateBudgetRequest sets or clears a budget.
// BudgetCents takes precedence over the dollar string; when both are absent
// or blank the budget is cleared.
type UpdateBudgetRequest struct {
	Budget      *string `json:"budget"`
	BudgetCents *int64  `json:"budgetCents"`
}

// ResolveBudgetCents returns the requested budget in cents, or nil to clear it.
func (r UpdateBudgetRequest) ResolveBudgetCents() (*int64, error) {
	if r.BudgetCents != nil {
		cents := *r.BudgetCents
		return &cents, nil
	}
	if r.Budget == nil || strings.TrimSpace(*r.Budget) == "" {
		return nil, nil
	}
	cents, err := utils.ParseMoneyToCents(*r.Budget)
	if err != nil {
		return nil, err
	}
	return &cents, nil
}

// SessionResponse is the API view of a session.
type SessionResponse struct {
	SessionID   string     `json:"sessionID"`
	StartedAt   time.Time  `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	IsOpen      bool       `json:"isOpen"`
	CasinoName  *string    `json:"casinoName,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	BudgetCents *int64     `json:"budgetCents,omitempty"`
	Budget      *string    `json:"budget,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TotalsResponse carries totals in cents together with their display strings.
type TotalsResponse struct {
	TotalInCents  int64  `json:"totalInCents"`
	TotalOutCents int64  `json:"totalOutCents"`
	NetCents      int64  `json:"netCents"`
	TotalIn       string `json:"totalIn"`
	TotalOut      string `json:"totalOut"`
	Net           string `json:"net"`
}

// SessionSummaryResponse is a session listed with its totals.
type SessionSummaryResponse struct {
	SessionResponse
	Totals TotalsResponse `json:"totals"`
}

// SessionDetailResponse is the full view of one session.
type SessionDetailResponse struct {
	Session              SessionResponse       `json:"session"`
	Transactions         []TransactionResponse `json:"transactions"`
	Totals               TotalsResponse        `json:"totals"`
	BudgetRemainingCents *int64                `json:"budgetRemainingCents,omitempty"`
	BudgetRemaining      *string               `json:"budgetRemaining,omitempty"`
}

// ListSessionsResponse wraps the list of sessions.
type ListSessionsResponse struct {
	Sessions []SessionSummaryResponse `json:"sessions"`
}

// SessionGroupResponse is one calendar day of sessions on the dashboard.
type SessionGroupResponse struct {
	DateKey  string                   `json:"dateKey"`
	Label    string                   `json:"label"`
	Sessions []SessionSummaryResponse `json:"sessions"`
}

// DashboardResponse is the session history grouped by local start date.
type DashboardResponse struct {
	Groups        []SessionGroupResponse `json:"groups"`
	AllTimeTotals TotalsResponse         `json:"allTimeTotals"`
}

// ToSessionResponse converts a domain.Session to its API view.
func ToSessionResponse(s domain.Session) SessionResponse {
	return SessionResponse{
		SessionID:   s.SessionID,
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
		IsOpen:      s.IsOpen(),
		CasinoName:  s.CasinoName,
		Notes:       s.Notes,
		BudgetCents: s.BudgetCents,
		Budget:      formatOptionalMoney(s.BudgetCents),
		CreatedAt:   s.CreatedAt,
	}
}

// ToTotalsResponse converts domain.Totals to its API view.
func ToTotalsResponse(t domain.Totals) TotalsResponse {
	return TotalsResponse{
		TotalInCents:  t.InCents,
		TotalOutCents: t.OutCents,
		NetCents:      t.NetCents,
		TotalIn:       utils.FormatMoney(t.InCents),
		TotalOut:      utils.FormatMoney(t.OutCents),
		Net:           utils.FormatMoney(t.NetCents),
	}
}

// ToSessionSummaryResponse converts a session with totals to its API view.
func ToSessionSummaryResponse(s domain.SessionWithTotals) SessionSummaryResponse {
	return SessionSummaryResponse{
		SessionResponse: ToSessionResponse(s.Session),
		Totals:          ToTotalsResponse(s.Totals),
	}
}

// ToListSessionsResponse converts a slice of sessions with totals.
func ToListSessionsResponse(sessions []domain.SessionWithTotals) ListSessionsResponse {
	resp := make([]SessionSummaryResponse, len(sessions))
	for i, s := range sessions {
		resp[i] = ToSessionSummaryResponse(s)
	}
	return ListSessionsResponse{Sessions: resp}
}

// ToSessionDetailResponse converts a session detail. Running nets are
// attached to the transactions at the same index.
func ToSessionDetailResponse(d domain.SessionDetail) SessionDetailResponse {
	txns := make([]TransactionResponse, len(d.Transactions))
	for i, t := range d.Transactions {
		txns[i] = ToTransactionResponse(t)
		if i < len(d.RunningNetCents) {
			net := d.RunningNetCents[i]
			txns[i].RunningNetCents = &net
			display := utils.FormatMoney(net)
			txns[i].RunningNet = &display
		}
	}
	return SessionDetailResponse{
		Session:              ToSessionResponse(d.Session),
		Transactions:         txns,
		Totals:               ToTotalsResponse(d.Totals),
		BudgetRemainingCents: d.BudgetRemainingCents,
		BudgetRemaining:      formatOptionalMoney(d.BudgetRemainingCents),
	}
}

// ToDashboardResponse converts a dashboard.
func ToDashboardResponse(d domain.Dashboard) DashboardResponse {
	groups := make([]SessionGroupResponse, len(d.Groups))
	for i, g := range d.Groups {
		sessions := make([]SessionSummaryResponse, len(g.Items))
		for j, s := range g.Items {
			sessions[j] = ToSessionSummaryResponse(s)
		}
		groups[i] = SessionGroupResponse{DateKey: g.DateKey, Label: g.Label, Sessions: sessions}
	}
	return DashboardResponse{
		Groups:        groups,
		AllTimeTotals: ToTotalsResponse(d.AllTimeTotals),
	}
}

func formatOptionalMoney(cents *int64) *string {
	if cents == nil {
		return nil
	}
	s := utils.FormatMoney(*cents)
	return &s
}
