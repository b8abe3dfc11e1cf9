package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/apperrors"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	portsrepo "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/repositories"
	portssvc "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/services"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/dto"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

// sessionService implements SessionSvcFacade over any LedgerStore. The same
// implementation serves the remote and the guest backends.
type sessionService struct {
	BaseService
	store portsrepo.LedgerStore
}

// NewSessionService creates a new session service backed by store.
func NewSessionService(store portsrepo.LedgerStore, options ...ServiceOption) portssvc.SessionSvcFacade {
	svc := &sessionService{
		BaseService: newBaseService(),
		store:       store,
	}
	svc.apply(options)
	return svc
}

// Ensure sessionService implements the SessionSvcFacade interface
var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

func (s *sessionService) CreateSession(ctx context.Context, ownerID string, req dto.CreateSessionRequest) (*domain.Session, error) {
	now := s.Now()
	session := domain.Session{
		SessionID:  s.NewID(),
		OwnerID:    ownerID,
		StartedAt:  now,
		CasinoName: normalizeOptionalText(req.CasinoName),
		CreatedAt:  now,
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		s.LogError(ctx, err, "Failed to save session", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.LogInfo(ctx, "Session started", slog.String("session_id", session.SessionID))
	return &session, nil
}

func (s *sessionService) EndSession(ctx context.Context, ownerID, sessionID string) (*domain.Session, error) {
	session, err := s.getSession(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.End(s.Now()) {
		return nil, fmt.Errorf("session %s already ended: %w", sessionID, apperrors.ErrSessionEnded)
	}

	if err := s.store.UpdateSession(ctx, *session); err != nil {
		s.LogError(ctx, err, "Failed to end session", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to end session: %w", err)
	}

	s.LogInfo(ctx, "Session ended", slog.String("session_id", sessionID))
	return session, nil
}

func (s *sessionService) RecordTransaction(ctx context.Context, ownerID, sessionID string, req dto.RecordTransactionRequest) (*domain.Transaction, error) {
	amountCents, err := req.ResolveAmountCents()
	if err != nil {
		return nil, err
	}

	now := s.Now()
	txn := domain.Transaction{
		TransactionID: s.NewID(),
		SessionID:     sessionID,
		OwnerID:       ownerID,
		Type:          domain.TransactionType(req.Type),
		AmountCents:   amountCents,
		OccurredAt:    now,
		Note:          normalizeOptionalText(req.Note),
		Game:          normalizeOptionalText(req.Game),
		CreatedAt:     now,
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	session, err := s.getSession(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsOpen() {
		return nil, fmt.Errorf("cannot record transaction on session %s: %w", sessionID, apperrors.ErrSessionEnded)
	}

	if err := s.store.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("session_id", sessionID),
		slog.String("type", string(txn.Type)),
		slog.Int64("amount_cents", txn.AmountCents))
	return &txn, nil
}

func (s *sessionService) UpdateNotes(ctx context.Context, ownerID, sessionID string, req dto.UpdateNotesRequest) (*domain.Session, error) {
	session, err := s.getSession(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Notes = normalizeOptionalText(req.Notes)
	if err := s.store.UpdateSession(ctx, *session); err != nil {
		s.LogError(ctx, err, "Failed to update session notes", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to update notes: %w", err)
	}
	return session, nil
}

func (s *sessionService) UpdateBudget(ctx context.Context, ownerID, sessionID string, req dto.UpdateBudgetRequest) (*domain.Session, error) {
	budgetCents, err := resolveBudget(req)
	if err != nil {
		return nil, err
	}

	session, err := s.getSession(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}

	session.BudgetCents = budgetCents
	if err := s.store.UpdateSession(ctx, *session); err != nil {
		s.LogError(ctx, err, "Failed to update session budget", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return session, nil
}

func (s *sessionService) GetSessionDetail(ctx context.Context, ownerID, sessionID string) (*domain.SessionDetail, error) {
	session, err := s.getSession(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}

	txns, err := s.store.ListTransactionsBySession(ctx, ownerID, sessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list session transactions", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	totals := accounting.CalculateTotals(txns)
	return &domain.SessionDetail{
		Session:              *session,
		Transactions:         accounting.NewestFirst(txns),
		RunningNetCents:      accounting.CalculateRunningNet(txns),
		Totals:               totals,
		BudgetRemainingCents: accounting.CalculateBudgetRemaining(session.BudgetCents, totals.InCents, totals.OutCents),
	}, nil
}

func (s *sessionService) ListSessions(ctx context.Context, ownerID string) ([]domain.SessionWithTotals, error) {
	sessions, _, err := s.listSessionsWithTotals(ctx, ownerID)
	return sessions, err
}

func (s *sessionService) GetDashboard(ctx context.Context, ownerID string, loc *time.Location) (*domain.Dashboard, error) {
	sessions, allTxns, err := s.listSessionsWithTotals(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	groups := accounting.GroupByLocalDate(sessions, func(item domain.SessionWithTotals) time.Time { return item.StartedAt }, loc)
	return &domain.Dashboard{
		Groups:        groups,
		AllTimeTotals: accounting.CalculateTotals(allTxns),
	}, nil
}

// listSessionsWithTotals returns the owner's sessions newest first with their
// totals, plus every transaction of the owner.
func (s *sessionService) listSessionsWithTotals(ctx context.Context, ownerID string) ([]domain.SessionWithTotals, []domain.Transaction, error) {
	var (
		sessions []domain.Session
		txns     []domain.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if sessions, err = s.store.ListSessionsByOwner(gctx, ownerID); err != nil {
			s.LogError(ctx, err, "Failed to list sessions", slog.String("owner_id", ownerID))
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if txns, err = s.store.ListTransactionsByOwner(gctx, ownerID); err != nil {
			s.LogError(ctx, err, "Failed to list transactions", slog.String("owner_id", ownerID))
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	bySession := make(map[string][]domain.Transaction, len(sessions))
	for _, txn := range txns {
		bySession[txn.SessionID] = append(bySession[txn.SessionID], txn)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})

	result := make([]domain.SessionWithTotals, len(sessions))
	for i, session := range sessions {
		result[i] = domain.SessionWithTotals{
			Session: session,
			Totals:  accounting.CalculateTotals(bySession[session.SessionID]),
		}
	}
	return result, txns, nil
}

func (s *sessionService) getSession(ctx context.Context, ownerID, sessionID string) (*domain.Session, error) {
	session, err := s.store.FindSessionByID(ctx, ownerID, sessionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find session", slog.String("session_id", sessionID))
		}
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}
	return session, nil
}

// resolveBudget converts a budget request to cents and checks it is positive when set.
func resolveBudget(req dto.UpdateBudgetRequest) (*int64, error) {
	budgetCents, err := req.ResolveBudgetCents()
	if err != nil {
		return nil, err
	}
	if budgetCents != nil && *budgetCents <= 0 {
		return nil, fmt.Errorf("budget must be greater than zero: %w", apperrors.ErrValidation)
	}
	return budgetCents, nil
}

// normalizeOptionalText trims v and maps blank text to nil.
func normalizeOptionalText(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
