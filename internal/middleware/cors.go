package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const localFrontendOrigin = "http://localhost:3000"

// CORS returns middleware allowing the web frontend to call the API.
// Without a configured frontend URL only the local dev origin is allowed.
func CORS(frontendBaseURL string) gin.HandlerFunc {
	frontendBaseURL = strings.TrimRight(frontendBaseURL, "/")
	origins := []string{localFrontendOrigin}
	if frontendBaseURL != "" && frontendBaseURL != localFrontendOrigin {
		origins = append(origins, frontendBaseURL)
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", GuestIDHeader, "X-Timezone", RequestIDHeader},
		ExposeHeaders:    []string{GuestIDHeader, RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           5 * time.Minute,
	})
}
