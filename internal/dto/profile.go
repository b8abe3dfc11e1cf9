package dto

import (
	"time"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/utils"
)

// DailyTotalResponse is one day of the profile history.
type DailyTotalResponse struct {
	DateKey string         `json:"dateKey"`
	Label   string         `json:"label"`
	Totals  TotalsResponse `json:"totals"`
}

// ProfileResponse is the all-time view of an owner's play.
type ProfileResponse struct {
	AllTimeTotals        TotalsResponse       `json:"allTimeTotals"`
	DailyTotals          []DailyTotalResponse `json:"dailyTotals"`
	GlobalBudgetCents    *int64               `json:"globalBudgetCents,omitempty"`
	GlobalBudget         *string              `json:"globalBudget,omitempty"`
	TotalLossCents       int64                `json:"totalLossCents"`
	TotalLoss            string               `json:"totalLoss"`
	BudgetRemainingCents *int64               `json:"budgetRemainingCents,omitempty"`
	BudgetRemaining      *string              `json:"budgetRemaining,omitempty"`
	GeneratedAt          time.Time            `json:"generatedAt"`
}

// SettingsResponse is the API view of an owner's settings.
type SettingsResponse struct {
	GlobalBudgetCents *int64  `json:"globalBudgetCents,omitempty"`
	GlobalBudget      *string `json:"globalBudget,omitempty"`
}

// PresetAmount is a quick-add amount offered by the client.
type PresetAmount struct {
	AmountCents int64  `json:"amountCents"`
	Label       string `json:"label"`
}

// PresetsResponse wraps the configured quick-add amounts.
type PresetsResponse struct {
	Presets []PresetAmount `json:"presets"`
}

// ToProfileResponse converts a domain.Profile to its API view.
func ToProfileResponse(p domain.Profile) ProfileResponse {
	daily := make([]DailyTotalResponse, len(p.DailyTotals))
	for i, d := range p.DailyTotals {
		daily[i] = DailyTotalResponse{DateKey: d.DateKey, Label: d.Label, Totals: ToTotalsResponse(d.Totals)}
	}
	return ProfileResponse{
		AllTimeTotals:        ToTotalsResponse(p.AllTimeTotals),
		DailyTotals:          daily,
		GlobalBudgetCents:    p.GlobalBudgetCents,
		GlobalBudget:         formatOptionalMoney(p.GlobalBudgetCents),
		TotalLossCents:       p.TotalLossCents,
		TotalLoss:            utils.FormatMoney(p.TotalLossCents),
		BudgetRemainingCents: p.BudgetRemainingCents,
		BudgetRemaining:      formatOptionalMoney(p.BudgetRemainingCents),
		GeneratedAt:          p.GeneratedAt,
	}
}

// ToSettingsResponse converts settings; nil settings mean no global budget.
func ToSettingsResponse(s *domain.UserSettings) SettingsResponse {
	if s == nil {
		return SettingsResponse{}
	}
	return SettingsResponse{
		GlobalBudgetCents: s.GlobalBudgetCents,
		GlobalBudget:      formatOptionalMoney(s.GlobalBudgetCents),
	}
}

// ToPresetsResponse converts configured amounts in cents.
func ToPresetsResponse(amounts []int64) PresetsResponse {
	presets := make([]PresetAmount, len(amounts))
	for i, cents := range amounts {
		presets[i] = PresetAmount{AmountCents: cents, Label: utils.FormatMoney(cents)}
	}
	return PresetsResponse{Presets: presets}
}
