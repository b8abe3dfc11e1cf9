package config_test

import (
	"log/slog"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "sessionstack", cfg.JWTIssuer)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.Equal(t, "UTC", cfg.DefaultLocation.String())
	assert.Equal(t, []int64{2000, 5000, 10000, 20000}, cfg.QuickAddPresets)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_DURATION", "30m")
	t.Setenv("DEFAULT_TIMEZONE", "America/New_York")
	t.Setenv("QUICK_ADD_PRESETS", "$5, 25.50 ,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, "America/New_York", cfg.DefaultLocation.String())
	assert.Equal(t, []int64{500, 2550}, cfg.QuickAddPresets)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadConfig_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY_DURATION", "soon")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiryDuration)
}

func TestLoadConfig_InvalidTimezone(t *testing.T) {
	t.Setenv("DEFAULT_TIMEZONE", "Mars/Olympus_Mons")

	_, err := config.LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_SECRET", "")

	_, err := config.LoadConfig()
	assert.Error(t, err)
}

func TestParsePresets(t *testing.T) {
	presets, err := config.ParsePresets("1, 2.5")
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 250}, presets)

	_, err = config.ParsePresets("10,abc")
	assert.Error(t, err)

	_, err = config.ParsePresets("0")
	assert.Error(t, err)

	presets, err = config.ParsePresets("")
	require.NoError(t, err)
	assert.Empty(t, presets)
}
