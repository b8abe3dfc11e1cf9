package repositories

import (
	"context"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
)

// SettingsReader defines read operations for account settings
type SettingsReader interface {
	// FindSettings returns the owner's settings, or apperrors.ErrNotFound if none were saved.
	FindSettings(ctx context.Context, ownerID string) (*domain.UserSettings, error)
}

// SettingsWriter defines write operations for account settings
type SettingsWriter interface {
	// SaveSettings inserts or replaces the owner's settings.
	SaveSettings(ctx context.Context, settings domain.UserSettings) error

	// DeleteSettings removes the owner's settings. Deleting absent settings is not an error.
	DeleteSettings(ctx context.Context, ownerID string) error
}
