package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/404twillCODE/Casino-Session-Tracker/cmd/docs"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/adapters/database/pgsql"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/adapters/guest"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/services"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/handlers"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/middleware"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/platform/config"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/utils"
	"github.com/404twillCODE/Casino-Session-Tracker/pkg/database"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title SessionStack API
// @version 1.0
// @description Casino session bankroll tracker: sessions, cash-ins, cash-outs and budgets.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		ConnectTimeout:  cfg.DBConnectTimeout,
		CheckConnection: cfg.EnableDBCheck,
	})
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := pgsql.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	guestStorage, err := newGuestStorage(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize guest storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if closer, ok := guestStorage.(io.Closer); ok {
		defer closer.Close()
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	repos.GuestStore = guest.NewStore(guestStorage)
	serviceContainer := services.NewServiceContainer(cfg, repos)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// newGuestStorage picks the guest document backend: SQLite when a database
// path is configured, one file per guest when a directory is, memory otherwise.
func newGuestStorage(cfg *config.Config, logger *slog.Logger) (guest.DocumentStorage, error) {
	switch {
	case cfg.GuestSQLitePath != "":
		logger.Info("Guest ledgers stored in SQLite", slog.String("path", cfg.GuestSQLitePath))
		return guest.NewSQLiteStorage(cfg.GuestSQLitePath)
	case cfg.GuestStorageDir != "":
		logger.Info("Guest ledgers stored on disk", slog.String("dir", cfg.GuestStorageDir))
		return guest.NewFileStorage(cfg.GuestStorageDir)
	default:
		logger.Warn("No guest storage configured, guest ledgers are kept in memory")
		return guest.NewMemoryStorage(), nil
	}
}
