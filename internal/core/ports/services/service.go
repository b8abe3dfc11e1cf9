package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
//
// Session and profile services exist once per storage backend; both are
// built from the same implementation over a different LedgerStore.
type ServiceContainer struct {
	Session            SessionSvcFacade
	Profile            ProfileSvcFacade
	GuestSession       SessionSvcFacade
	GuestProfile       ProfileSvcFacade
	User               UserSvcFacade
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
