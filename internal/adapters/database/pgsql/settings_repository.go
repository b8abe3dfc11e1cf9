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

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) *PgxSettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.SettingsReader = (*PgxSettingsRepository)(nil)
	_ portsrepo.SettingsWriter = (*PgxSettingsRepository)(nil)
)

func (r *PgxSettingsRepository) FindSettings(ctx context.Context, ownerID string) (*domain.UserSettings, error) {
	query := `
		SELECT owner_id, global_budget_cents, updated_at
		FROM user_settings
		WHERE owner_id = $1;
	`
	var s domain.UserSettings
	err := r.Pool.QueryRow(ctx, query, ownerID).Scan(&s.OwnerID, &s.GlobalBudgetCents, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("settings: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}
	return &s, nil
}

func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.UserSettings) error {
	query := `
		INSERT INTO user_settings (owner_id, global_budget_cents, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id) DO UPDATE SET
			global_budget_cents = EXCLUDED.global_budget_cents,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, settings.OwnerID, settings.GlobalBudgetCents, settings.UpdatedAt); err != nil {
		return mapPgError(err, "failed to save settings")
	}
	return nil
}

func (r *PgxSettingsRepository) DeleteSettings(ctx context.Context, ownerID string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM user_settings WHERE owner_id = $1;`, ownerID); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	return nil
}
