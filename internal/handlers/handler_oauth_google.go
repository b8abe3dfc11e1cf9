package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/apperrors"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	portssvc "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/services"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/dto"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/middleware"
	"golang.org/x/oauth2"

	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler handles Google sign-in.
// It depends on the Google OAuth service, user service, and token service.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
	}
}

// ExchangeCodeRequest defines the expected JSON body for the /google/exchange-code endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// GoogleLoginURLResponse carries the consent URL and the state the client must verify on return.
type GoogleLoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// googleIdentity is the subset of Google's user profile needed to sign in.
type googleIdentity struct {
	subject string
	email   string
	name    string
}

// LoginURLGoogle godoc
// @Summary Get the Google consent URL
// @Description Returns the Google consent URL and a fresh state value
// @Tags oauth
// @Produce  json
// @Success 200 {object} GoogleLoginURLResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) LoginURLGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate OAuth state", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Failed to start Google sign-in.")
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	c.JSON(http.StatusOK, GoogleLoginURLResponse{
		URL:   h.googleOAuthService.GetGoogleLoginURL(ctx, state),
		State: state,
	})
}

// ExchangeCodeGoogle handles the POST request from the frontend containing the authorization code from Google.
// It exchanges the code for Google tokens, resolves the Google identity, creates or retrieves the user,
// and returns an application JWT.
// @Summary Exchange authorization code for access token
// @Description Exchange a Google authorization code for an application access token
// @Tags oauth
// @Accept  json
// @Produce  json
// @Param   code body ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Invalid authorization code"
// @Failure 401 {object} ErrorResponse "Invalid Google ID token"
// @Failure 409 {object} ErrorResponse "Email registered with another sign-in method"
// @Failure 504 {object} ErrorResponse "Google unreachable"
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnContext(ctx, "Failed to bind JSON for exchange code request", slog.String("error", err.Error()))
		appErr := apperrors.NewBadRequestError("Authorization code is required.")
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service.")
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code provided by Google.")
		}
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	identity, appErr := h.resolveIdentity(ctx, oauth2Token)
	if appErr != nil {
		logger.WarnContext(ctx, "Could not resolve Google identity", slog.String("error", appErr.Error()))
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	user, err := h.userService.CreateOAuthUser(ctx, identity.name, identity.email, domain.ProviderGoogle, identity.subject)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create or get OAuth user", slog.String("error", err.Error()), slog.String("google_user_id", identity.subject))
		var svcErr *apperrors.AppError
		if errors.As(err, &svcErr) {
			c.JSON(svcErr.Code, ErrorResponse{Error: svcErr.Message})
		} else {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process user authentication"})
		}
		return
	}

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate application access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate access token"})
		return
	}

	logger.InfoContext(ctx, "User signed in with Google", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken, ExpiresAt: expiresAt})
}

// resolveIdentity prefers the signed ID token and falls back to the userinfo
// endpoint when Google's response carries none.
func (h *GoogleOAuthHandler) resolveIdentity(ctx context.Context, token *oauth2.Token) (*googleIdentity, *apperrors.AppError) {
	var identity googleIdentity

	if idTokenString, ok := token.Extra("id_token").(string); ok && idTokenString != "" {
		payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
		if err != nil {
			return nil, apperrors.NewUnauthorizedError("Invalid Google ID token.")
		}
		identity.subject = payload.Subject
		identity.email, _ = payload.Claims["email"].(string)
		identity.name, _ = payload.Claims["name"].(string)
	} else {
		info, err := h.googleOAuthService.GetUserInfo(ctx, token)
		if err != nil {
			return nil, apperrors.NewGatewayTimeoutError("Failed to read Google profile.")
		}
		identity = googleIdentity{subject: info.ID, email: info.Email, name: info.Name}
	}

	if identity.subject == "" || identity.email == "" {
		return nil, apperrors.NewInternalServerError("Essential user information missing from Google response.")
	}
	if identity.name == "" {
		identity.name = identity.email
	}
	return &identity, nil
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, services.TokenService)
	googleRoutes := rg.Group("/google")
	{
		googleRoutes.GET("/login", h.LoginURLGoogle)
		googleRoutes.POST("/exchange-code", h.ExchangeCodeGoogle)
	}
}
