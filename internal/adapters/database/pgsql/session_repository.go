package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/apperrors"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	portsrepo "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionColumns = `session_id, owner_id, started_at, ended_at, casino_name, notes, budget_cents, created_at`

type PgxSessionRepository struct {
	BaseRepository
}

func newPgxSessionRepository(pool *pgxpool.Pool) *PgxSessionRepository {
	return &PgxSessionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.SessionReader = (*PgxSessionRepository)(nil)
	_ portsrepo.SessionWriter = (*PgxSessionRepository)(nil)
)

func scanSession(row pgx.Row) (domain.Session, error) {
	var s domain.Session
	err := row.Scan(
		&s.SessionID,
		&s.OwnerID,
		&s.StartedAt,
		&s.EndedAt,
		&s.CasinoName,
		&s.Notes,
		&s.BudgetCents,
		&s.CreatedAt,
	)
	return s, err
}

func (r *PgxSessionRepository) SaveSession(ctx context.Context, session domain.Session) error {
	query := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		session.SessionID,
		session.OwnerID,
		session.StartedAt,
		session.EndedAt,
		session.CasinoName,
		session.Notes,
		session.BudgetCents,
		session.CreatedAt,
	)
	if err != nil {
		return mapPgError(err, "failed to save session")
	}
	return nil
}

// UpdateSession writes notes, casino name and budget. ended_at is only
// filled while still NULL, so an end time on record never changes.
func (r *PgxSessionRepository) UpdateSession(ctx context.Context, session domain.Session) error {
	query := `
		UPDATE sessions
		SET ended_at = COALESCE(ended_at, $3),
		    casino_name = $4,
		    notes = $5,
		    budget_cents = $6
		WHERE session_id = $1 AND owner_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		session.SessionID,
		session.OwnerID,
		session.EndedAt,
		session.CasinoName,
		session.Notes,
		session.BudgetCents,
	)
	if err != nil {
		return mapPgError(err, "failed to update session")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", session.SessionID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxSessionRepository) FindSessionByID(ctx context.Context, ownerID, sessionID string) (*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE session_id = $1 AND owner_id = $2;
	`
	session, err := scanSession(r.Pool.QueryRow(ctx, query, sessionID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find session by ID %s: %w", sessionID, err)
	}
	return &session, nil
}

func (r *PgxSessionRepository) ListSessionsByOwner(ctx context.Context, ownerID string) ([]domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE owner_id = $1
		ORDER BY started_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}
	return sessions, nil
}
