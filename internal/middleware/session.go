package middleware

import (
	"net/http" // HTTP status codes

	"crypto_bank/internal/session" // Session store

	"github.com/gin-gonic/gin" // Gin web framework
)

// SessionAuthMiddleware resolves the session cookie to a user ID
func SessionAuthMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName) // Get session cookie
		// Check if the cookie is present
		if err != nil || token == "" {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Resolve the token against the session store
		userID, ok, err := store.Get(c.Request.Context(), token)
		if err != nil || !ok {
			// Unknown or expired session, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("userID", userID)      // Store userID in context
		c.Set("sessionToken", token) // Keep the token for handlers that clear sessions
		c.Next()                     // Proceed to the next handler
	}
}
