package handlers

import (
	"net/http"

	portssvc "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/services"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/dto"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// profileHandler handles HTTP requests related to the account-wide view.
type profileHandler struct {
	profileService portssvc.ProfileSvcFacade
	resolveOwner   OwnerResolver
	opts           LedgerRouteOptions
}

func registerProfileRoutes(rg *gin.RouterGroup, profileService portssvc.ProfileSvcFacade, resolveOwner OwnerResolver, opts LedgerRouteOptions) {
	h := &profileHandler{
		profileService: profileService,
		resolveOwner:   resolveOwner,
		opts:           opts,
	}

	profile := rg.Group("/profile")
	{
		profile.GET("", h.getProfile)
		profile.PUT("/budget", h.setGlobalBudget)
		profile.DELETE("", h.resetAccount)
	}
}

// getProfile godoc
// @Summary Get the profile
// @Description Returns all-time totals, daily history and the global budget
// @Tags profile
// @Produce  json
// @Param   tz query string false "IANA timezone used for daily history"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} ErrorResponse "Unknown timezone"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to load profile"
// @Security BearerAuth
// @Router /profile [get]
func (h *profileHandler) getProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := owner(c, h.resolveOwner, logger)
	if !ok {
		return
	}
	loc, ok := requestLocation(c, h.opts.DefaultLocation, logger)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), ownerID, loc)
	if err != nil {
		respondWithError(c, logger, err, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(*profile))
}

// setGlobalBudget godoc
// @Summary Set the global budget
// @Description Sets the account-wide budget; a blank budget clears it
// @Tags profile
// @Accept  json
// @Produce  json
// @Param   budget body dto.UpdateBudgetRequest true "Budget"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} ErrorResponse "Invalid budget"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to update budget"
// @Security BearerAuth
// @Router /profile/budget [put]
func (h *profileHandler) setGlobalBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := owner(c, h.resolveOwner, logger)
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	settings, err := h.profileService.SetGlobalBudget(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// resetAccount godoc
// @Summary Reset the account
// @Description Erases every session, transaction and setting of the caller
// @Tags profile
// @Success 204 "Account reset"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to reset account"
// @Security BearerAuth
// @Router /profile [delete]
func (h *profileHandler) resetAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := owner(c, h.resolveOwner, logger)
	if !ok {
		return
	}

	if err := h.profileService.ResetAccount(c.Request.Context(), ownerID); err != nil {
		respondWithError(c, logger, err, "Failed to reset account")
		return
	}

	c.Status(http.StatusNoContent)
}
