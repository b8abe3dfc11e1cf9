package services

import (
	portsrepo "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/repositories"
	portssvc "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/services"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Session:            NewSessionService(repos.LedgerStore),
		Profile:            NewProfileService(repos.LedgerStore),
		GuestSession:       NewSessionService(repos.GuestStore),
		GuestProfile:       NewProfileService(repos.GuestStore),
		User:               NewUserService(repos.UserRepo),
		TokenService:       NewTokenService(cfg),
		GoogleOAuthHandler: NewGoogleOAuthHandlerService(cfg),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TokenSvcFacade              = (*tokenService)(nil)
	_ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)
)
