package handlers

import (
	"fmt"

	"github.com/404twillCODE/Casino-Session-Tracker/cmd/docs"
	portssvc "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/services"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/middleware"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	r.Use(middleware.CORS(cfg.FrontendBaseURL))

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	loginLimit, err := middleware.NewMemoryRateLimit(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("login rate limit: %w", err)
	}
	guestLimit, err := middleware.NewMemoryRateLimit(cfg.GuestRateLimit)
	if err != nil {
		return fmt.Errorf("guest rate limit: %w", err)
	}

	opts := LedgerRouteOptions{
		DefaultLocation: cfg.DefaultLocation,
		QuickAddPresets: cfg.QuickAddPresets,
	}

	// Public authentication routes
	registerAuthRoutes(r.Group("/api/v1"), services, loginLimit)

	setupGuestRoutes(r, services, guestLimit, opts)

	setupAPIV1Routes(r, cfg, services, opts)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated /api/v1 routes
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts LedgerRouteOptions,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	RegisterLedgerRoutes(v1, services.Session, services.Profile, UserOwner, opts)
}

// setupGuestRoutes serves the same ledger routes from the guest store,
// keyed by the X-Guest-ID header.
func setupGuestRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	guestLimit gin.HandlerFunc,
	opts LedgerRouteOptions,
) {
	guest := r.Group("/api/v1/guest", guestLimit, middleware.GuestMiddleware())

	RegisterLedgerRoutes(guest, services.GuestSession, services.GuestProfile, GuestOwner, opts)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
