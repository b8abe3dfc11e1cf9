package middleware

import (
	"context"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the request context.
const userIDKey = contextKey("userID")

// guestIDKey is the key used to store the guest ID in the request context.
const guestIDKey = contextKey("guestID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetGuestIDFromContext retrieves the guest ID set by GuestMiddleware.
func GetGuestIDFromContext(c *gin.Context) (string, bool) {
	guestID, ok := c.Request.Context().Value(guestIDKey).(string)
	if !ok || guestID == "" {
		return "", false
	}
	return guestID, true
}

// GuestOwnerID returns the ledger owner ID used for a guest.
func GuestOwnerID(guestID string) string {
	return domain.GuestOwnerPrefix + guestID
}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
