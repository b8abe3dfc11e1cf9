package services

import (
	"context"
	"time"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/dto"
)

// SessionReaderSvc defines read operations over an owner's sessions
type SessionReaderSvc interface {
	// GetSessionDetail returns a session with its transactions (newest first),
	// totals, running nets and remaining budget.
	GetSessionDetail(ctx context.Context, ownerID, sessionID string) (*domain.SessionDetail, error)

	// ListSessions returns the owner's sessions, newest first, each with its totals.
	ListSessions(ctx context.Context, ownerID string) ([]domain.SessionWithTotals, error)

	// GetDashboard groups the owner's sessions by local start date in loc.
	GetDashboard(ctx context.Context, ownerID string, loc *time.Location) (*domain.Dashboard, error)
}

// SessionLifecycleSvc defines the open/end state transitions of a session
type SessionLifecycleSvc interface {
	// CreateSession starts a new open session.
	CreateSession(ctx context.Context, ownerID string, req dto.CreateSessionRequest) (*domain.Session, error)

	// EndSession ends an open session. Ending an already ended session
	// returns apperrors.ErrSessionEnded and changes nothing.
	EndSession(ctx context.Context, ownerID, sessionID string) (*domain.Session, error)
}

// SessionWriterSvc defines mutations within a session
type SessionWriterSvc interface {
	// RecordTransaction appends a cash-in or cash-out to an open session.
	RecordTransaction(ctx context.Context, ownerID, sessionID string, req dto.RecordTransactionRequest) (*domain.Transaction, error)

	// UpdateNotes replaces the session notes; blank notes clear them.
	UpdateNotes(ctx context.Context, ownerID, sessionID string, req dto.UpdateNotesRequest) (*domain.Session, error)

	// UpdateBudget sets or clears the session budget.
	UpdateBudget(ctx context.Context, ownerID, sessionID string, req dto.UpdateBudgetRequest) (*domain.Session, error)
}

// SessionSvcFacade combines all session-related service interfaces
type SessionSvcFacade interface {
	SessionReaderSvc
	SessionLifecycleSvc
	SessionWriterSvc
}
