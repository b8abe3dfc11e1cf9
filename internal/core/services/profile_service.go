package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/apperrors"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	portsrepo "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/repositories"
	portssvc "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/services"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/dto"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

type profileService struct {
	BaseService
	store portsrepo.LedgerStore
}

// NewProfileService creates a new profile service backed by store.
func NewProfileService(store portsrepo.LedgerStore, options ...ServiceOption) portssvc.ProfileSvcFacade {
	svc := &profileService{
		BaseService: newBaseService(),
		store:       store,
	}
	svc.apply(options)
	return svc
}

var _ portssvc.ProfileSvcFacade = (*profileService)(nil)

func (s *profileService) GetProfile(ctx context.Context, ownerID string, loc *time.Location) (*domain.Profile, error) {
	var (
		txns     []domain.Transaction
		settings *domain.UserSettings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if txns, err = s.store.ListTransactionsByOwner(gctx, ownerID); err != nil {
			s.LogError(ctx, err, "Failed to list transactions for profile", slog.String("owner_id", ownerID))
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		settings, err = s.findSettings(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var globalBudget *int64
	if settings != nil {
		globalBudget = settings.GlobalBudgetCents
	}

	totals := accounting.CalculateTotals(txns)
	return &domain.Profile{
		AllTimeTotals:        totals,
		DailyTotals:          accounting.CalculateDailyTotals(txns, loc),
		GlobalBudgetCents:    globalBudget,
		TotalLossCents:       accounting.CalculateLoss(totals.InCents, totals.OutCents),
		BudgetRemainingCents: accounting.CalculateBudgetRemaining(globalBudget, totals.InCents, totals.OutCents),
		GeneratedAt:          s.Now(),
	}, nil
}

func (s *profileService) SetGlobalBudget(ctx context.Context, ownerID string, req dto.UpdateBudgetRequest) (*domain.UserSettings, error) {
	budgetCents, err := resolveBudget(req)
	if err != nil {
		return nil, err
	}

	if budgetCents == nil {
		if err := s.store.DeleteSettings(ctx, ownerID); err != nil {
			s.LogError(ctx, err, "Failed to clear global budget", slog.String("owner_id", ownerID))
			return nil, fmt.Errorf("failed to clear global budget: %w", err)
		}
		s.LogInfo(ctx, "Global budget cleared")
		return nil, nil
	}

	settings := domain.UserSettings{
		OwnerID:           ownerID,
		GlobalBudgetCents: budgetCents,
		UpdatedAt:         s.Now(),
	}
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		s.LogError(ctx, err, "Failed to save global budget", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save global budget: %w", err)
	}
	s.LogInfo(ctx, "Global budget updated", slog.Int64("budget_cents", *budgetCents))
	return &settings, nil
}

func (s *profileService) ResetAccount(ctx context.Context, ownerID string) error {
	if err := s.store.DeleteOwnerData(ctx, ownerID); err != nil {
		s.LogError(ctx, err, "Failed to reset account", slog.String("owner_id", ownerID))
		return fmt.Errorf("failed to reset account: %w", err)
	}
	s.LogInfo(ctx, "Account data reset", slog.String("owner_id", ownerID))
	return nil
}

// findSettings returns nil settings when none were saved.
func (s *profileService) findSettings(ctx context.Context, ownerID string) (*domain.UserSettings, error) {
	settings, err := s.store.FindSettings(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to load settings", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}
