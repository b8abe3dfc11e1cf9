package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	portssvc "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/services"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/dto"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// TimezoneHeader carries the caller's IANA timezone for date grouping.
const TimezoneHeader = "X-Timezone"

// OwnerResolver returns the ledger owner for the current request.
type OwnerResolver func(c *gin.Context) (string, bool)

// UserOwner resolves the authenticated user as the ledger owner.
func UserOwner(c *gin.Context) (string, bool) {
	return middleware.GetUserIDFromContext(c)
}

// GuestOwner resolves the guest identity set by GuestMiddleware as the ledger owner.
func GuestOwner(c *gin.Context) (string, bool) {
	guestID, ok := middleware.GetGuestIDFromContext(c)
	if !ok {
		return "", false
	}
	return middleware.GuestOwnerID(guestID), true
}

// LedgerRouteOptions holds the request defaults shared by the ledger routes.
type LedgerRouteOptions struct {
	DefaultLocation *time.Location
	QuickAddPresets []int64 // Cents
}

// sessionHandler handles HTTP requests related to sessions and their transactions.
type sessionHandler struct {
	sessionService portssvc.SessionSvcFacade
	resolveOwner   OwnerResolver
	opts           LedgerRouteOptions
}

func newSessionHandler(ss portssvc.SessionSvcFacade, resolveOwner OwnerResolver, opts LedgerRouteOptions) *sessionHandler {
	return &sessionHandler{
		sessionService: ss,
		resolveOwner:   resolveOwner,
		opts:           opts,
	}
}

// RegisterLedgerRoutes registers the session, profile and preset routes on rg.
// The same routes serve authenticated users and guests; resolveOwner and the
// services passed in decide whose ledger, and which store, a request touches.
func RegisterLedgerRoutes(
	rg *gin.RouterGroup,
	sessionService portssvc.SessionSvcFacade,
	profileService portssvc.ProfileSvcFacade,
	resolveOwner OwnerResolver,
	opts LedgerRouteOptions,
) {
	registerValidators()
	if opts.DefaultLocation == nil {
		opts.DefaultLocation = time.UTC
	}

	h := newSessionHandler(sessionService, resolveOwner, opts)

	rg.GET("/dashboard", h.getDashboard)
	rg.GET("/presets", h.getPresets)

	sessions := rg.Group("/sessions")
	{
		sessions.GET("", h.listSessions)
		sessions.POST("", h.createSession)
		sessions.GET("/:sessionID", h.getSession)
		sessions.POST("/:sessionID/end", h.endSession)
		sessions.PUT("/:sessionID/notes", h.updateNotes)
		sessions.PUT("/:sessionID/budget", h.updateBudget)
		sessions.POST("/:sessionID/transactions", h.recordTransaction)
	}

	registerProfileRoutes(rg, profileService, resolveOwner, opts)
}

// owner resolves the request's ledger owner, writing a 401 when absent.
func owner(c *gin.Context, resolve OwnerResolver, logger *slog.Logger) (string, bool) {
	ownerID, ok := resolve(c)
	if !ok {
		logger.Error("Ledger owner not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return ownerID, true
}

// requestLocation resolves the timezone from the tz query parameter or the
// X-Timezone header, falling back to the default. An unknown zone is a 400.
func requestLocation(c *gin.Context, fallback *time.Location, logger *slog.Logger) (*time.Location, bool) {
	name := strings.TrimSpace(c.Query("tz"))
	if name == "" {
		name = strings.TrimSpace(c.GetHeader(TimezoneHeader))
	}
	if name == "" {
		return fallback, true
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("Unknown timezone requested", slog.String("tz", name))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown timezone: " + name})
		return nil, false
	}
	return loc, true
}

// getDashboard godoc
// @Summary Get the session dashboard
// @Description Lists sessions grouped by local start date, newest first, with all-time totals
// @Tags sessions
// @Produce  json
// @Param   tz query string false "IANA timezone used for date grouping"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse "Unknown timezone"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to load dashboard"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *sessionHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := owner(c, h.resolveOwner, logger)
	if !ok {
		return
	}
	loc, ok := requestLocation(c, h.opts.DefaultLocation, logger)
	if !ok {
		return
	}

	dashboard, err := h.sessionService.GetDashboard(c.Request.Context(), ownerID, loc)
	if err != nil {
		respondWithError(c, logger, err, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(*dashboard))
}

// getPresets godoc
// @Summary Get quick-add amounts
// @Description Returns the preset amounts offered for one-tap cash-ins and cash-outs
// @Tags sessions
// @Produce  json
// @Success 200 {object} dto.PresetsResponse
// @Security BearerAuth
// @Router /presets [get]
func (h *sessionHandler) getPresets(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToPresetsResponse(h.opts.QuickAddPresets))
}

// listSessions godoc
// @Summary List sessions
// @Description Lists the caller's sessions, newest first, each with its totals
// @Tags sessions
// @Produce  json
// @Success 200 {object} dto.ListSessionsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list sessions"
// @Security BearerAuth
// @Router /sessions [get]
func (h *sessionHandler) listSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := owner(c, h.resolveOwner, logger)
	if !ok {
		return
	}

	sessions, err := h.sessionService.ListSessions(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list sessions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSessionsResponse(sessions))
}

// createSession godoc
// @Summary Start a session
// @Description Starts a new open session for the caller
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   session body dto.CreateSessionRequest false "Session details"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to start session"
// @Security BearerAuth
// @Router /sessions [post]
func (h *sessionHandler) createSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := owner(c, h.resolveOwner, logger)
	if !ok {
		return
	}

	var req dto.CreateSessionRequest
	// An empty body starts a session without a casino name.
	if !bindOptionalJSON(c, logger, &req) {
		return
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to start session")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSessionResponse(*session))
}

// getSession godoc
// @Summary Get a session
// @Description Returns a session with its transactions (newest first), running nets, totals and remaining budget
// @Tags sessions
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionDetailResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 500 {object} ErrorResponse "Failed to load session"
// @Security BearerAuth
// @Router /sessions/{sessionID} [get]
func (h *sessionHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := owner(c, h.resolveOwner, logger)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	detail, err := h.sessionService.GetSessionDetail(c.Request.Context(), ownerID, sessionID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to load session")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionDetailResponse(*detail))
}

// endSession godoc
// @Summary End a session
// @Description Ends an open session; an ended session accepts no further transactions
// @Tags sessions
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 409 {object} ErrorResponse "Session already ended"
// @Failure 500 {object} ErrorResponse "Failed to end session"
// @Security BearerAuth
// @Router /sessions/{sessionID}/end [post]
func (h *sessionHandler) endSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := owner(c, h.resolveOwner, logger)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	session, err := h.sessionService.EndSession(c.Request.Context(), ownerID, sessionID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to end session")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(*session))
}

// updateNotes godoc
// @Summary Update session notes
// @Description Replaces the session notes; blank notes clear them
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   notes body dto.UpdateNotesRequest true "Notes"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 500 {object} ErrorResponse "Failed to update notes"
// @Security BearerAuth
// @Router /sessions/{sessionID}/notes [put]
func (h *sessionHandler) updateNotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := owner(c, h.resolveOwner, logger)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	var req dto.UpdateNotesRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	session, err := h.sessionService.UpdateNotes(c.Request.Context(), ownerID, sessionID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update notes")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(*session))
}

// updateBudget godoc
// @Summary Update session budget
// @Description Sets the session budget from budgetCents or a dollar string; blank clears it
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   budget body dto.UpdateBudgetRequest true "Budget"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} ErrorResponse "Invalid budget"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 500 {object} ErrorResponse "Failed to update budget"
// @Security BearerAuth
// @Router /sessions/{sessionID}/budget [put]
func (h *sessionHandler) updateBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := owner(c, h.resolveOwner, logger)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	var req dto.UpdateBudgetRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	session, err := h.sessionService.UpdateBudget(c.Request.Context(), ownerID, sessionID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(*session))
}

// recordTransaction godoc
// @Summary Record a transaction
// @Description Records a cash-in or cash-out on an open session
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   transaction body dto.RecordTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or type"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 409 {object} ErrorResponse "Session has ended"
// @Failure 500 {object} ErrorResponse "Failed to record transaction"
// @Security BearerAuth
// @Router /sessions/{sessionID}/transactions [post]
func (h *sessionHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := owner(c, h.resolveOwner, logger)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	var req dto.RecordTransactionRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	txn, err := h.sessionService.RecordTransaction(c.Request.Context(), ownerID, sessionID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*txn))
}
