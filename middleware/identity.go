package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key the identity middleware populates.
const UserIDKey = "userID"

// Identity copies the caller identity from the X-User-ID header into the
// request context. The header is set by the upstream auth layer after it
// verifies the session; an absent header is an anonymous read.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader("X-User-ID")); id != "" {
			c.Set(UserIDKey, id)
		}
		c.Next()
	}
}

// RequireUser rejects requests that arrived without a caller identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "X-User-ID header required",
			})
			return
		}
		c.Next()
	}
}

// UserID returns the acting user ID, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
