package repositories

import (
	"context"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
)

// SessionReader defines read operations for session data
type SessionReader interface {
	// FindSessionByID retrieves one of the owner's sessions. Returns apperrors.ErrNotFound when absent.
	FindSessionByID(ctx context.Context, ownerID, sessionID string) (*domain.Session, error)

	// ListSessionsByOwner retrieves all of the owner's sessions, newest start first.
	ListSessionsByOwner(ctx context.Context, ownerID string) ([]domain.Session, error)
}

// SessionWriter defines write operations for session data
type SessionWriter interface {
	// SaveSession persists a new session.
	SaveSession(ctx context.Context, session domain.Session) error

	// UpdateSession replaces the mutable fields of an existing session.
	// Implementations must never change EndedAt once it has been set.
	UpdateSession(ctx context.Context, session domain.Session) error
}
