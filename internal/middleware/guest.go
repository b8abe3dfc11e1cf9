package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GuestIDHeader identifies a guest's local ledger.
const GuestIDHeader = "X-Guest-ID"

// GuestMiddleware resolves the caller's guest identity. A valid UUID in the
// X-Guest-ID header is reused; when the header is absent a new ID is issued
// and echoed back so the client can keep it. A malformed ID is rejected.
func GuestMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		guestID := strings.TrimSpace(c.GetHeader(GuestIDHeader))
		if guestID == "" {
			guestID = uuid.NewString()
			logger.Info("Issued new guest ID", slog.String("guest_id", guestID))
		} else {
			parsed, err := uuid.Parse(guestID)
			if err != nil {
				logger.Warn("Malformed guest ID", slog.String("guest_id", guestID))
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-Guest-ID must be a UUID"})
				return
			}
			guestID = parsed.String()
		}

		c.Header(GuestIDHeader, guestID)

		ctx := context.WithValue(c.Request.Context(), guestIDKey, guestID)
		ctx = WithLogger(ctx, logger.With(slog.String("guest_id", guestID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
