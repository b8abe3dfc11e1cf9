package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	DBMaxConns         int32
	DBConnectTimeout   time.Duration
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	LogLevel           slog.Level

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	PosthogAPIKey   string
	PosthogEndpoint string

	// Guest mode
	GuestSQLitePath string // Takes precedence over GuestStorageDir
	GuestStorageDir string // Empty (with no SQLite path) keeps guest documents in memory
	GuestRateLimit  string

	LoginRateLimit  string
	DefaultLocation *time.Location
	QuickAddPresets []int64 // Cents
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	viper.SetDefault("SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "sessionstack")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("GUEST_SQLITE_PATH", "")
	viper.SetDefault("GUEST_STORAGE_DIR", "")
	viper.SetDefault("GUEST_RATE_LIMIT", "120-M")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("DEFAULT_TIMEZONE", "UTC")
	viper.SetDefault("QUICK_ADD_PRESETS", "20,50,100,200")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")
	cfg.DBConnectTimeout = durationOrDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	cfg.ServerReadTimeout = durationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	cfg.ServerWriteTimeout = durationOrDefault("SERVER_WRITE_TIMEOUT", 15*time.Second)

	if err := cfg.LogLevel.UnmarshalText([]byte(viper.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", viper.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if viper.GetBool("IS_PRODUCTION") {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", 24*time.Hour)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "sessionstack"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET or GOOGLE_REDIRECT_URL not set. Google sign-in will not function.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	cfg.GuestSQLitePath = viper.GetString("GUEST_SQLITE_PATH")
	cfg.GuestStorageDir = viper.GetString("GUEST_STORAGE_DIR")
	cfg.GuestRateLimit = viper.GetString("GUEST_RATE_LIMIT")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	tz := viper.GetString("DEFAULT_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_TIMEZONE %q: %w", tz, err)
	}
	cfg.DefaultLocation = loc

	presets, err := ParsePresets(viper.GetString("QUICK_ADD_PRESETS"))
	if err != nil {
		return nil, err
	}
	cfg.QuickAddPresets = presets

	return cfg, nil
}

// ParsePresets parses a comma-separated list of dollar amounts into cents.
// Blank entries are skipped; every amount must be positive.
func ParsePresets(raw string) ([]int64, error) {
	presets := []int64{}
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		cents, err := utils.ParseMoneyToCents(part)
		if err != nil || cents <= 0 {
			return nil, fmt.Errorf("invalid QUICK_ADD_PRESETS entry %q", part)
		}
		presets = append(presets, cents)
	}
	return presets, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
