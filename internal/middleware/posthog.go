package middleware

import (
	"net/http"
	"strings"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls with PostHog.
// Authenticated calls are attributed to the user ID, guest calls to the guest owner ID.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		distinctID, ok := distinctIDFromContext(c)
		if !ok {
			return
		}

		eventName := EventNameForRoute(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string)
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(distinctID, eventName, props)
	}
}

// EventNameForRoute derives an event name from a route template,
// e.g. "/api/v1/sessions/:sessionID/end" -> "api_v1_sessions_sessionID_end".
func EventNameForRoute(fullPath string) string {
	name := strings.TrimPrefix(fullPath, "/")
	name = strings.ReplaceAll(name, ":", "")
	name = strings.ReplaceAll(name, "*", "")
	return strings.ReplaceAll(name, "/", "_")
}

func distinctIDFromContext(c *gin.Context) (string, bool) {
	if userID, ok := GetUserIDFromContext(c); ok {
		return userID, true
	}
	if guestID, ok := GetGuestIDFromContext(c); ok {
		return GuestOwnerID(guestID), true
	}
	return "", false
}
