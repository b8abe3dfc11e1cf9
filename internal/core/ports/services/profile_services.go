package services

import (
	"context"
	"time"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/dto"
)

// ProfileSvcFacade defines account-wide operations
type ProfileSvcFacade interface {
	// GetProfile returns all-time totals, daily history in loc, and the global budget.
	GetProfile(ctx context.Context, ownerID string, loc *time.Location) (*domain.Profile, error)

	// SetGlobalBudget sets or clears the owner's global budget.
	// It returns nil settings when the budget was cleared.
	SetGlobalBudget(ctx context.Context, ownerID string, req dto.UpdateBudgetRequest) (*domain.UserSettings, error)

	// ResetAccount erases every session, transaction and setting of the owner.
	ResetAccount(ctx context.Context, ownerID string) error
}
