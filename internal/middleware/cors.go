package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // Origin list matching

	"github.com/gin-gonic/gin" // Gin web framework
)

// CORSMiddleware allows the browser client to send the session cookie cross-origin.
// The Origin header is echoed back (optionally restricted to an allow-list)
// because Allow-Credentials forbids the wildcard origin.
func CORSMiddleware(allowedOrigins string) gin.HandlerFunc {
	// Parse the comma-separated allow-list once
	var allowed []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin") // Origin of the request
		if origin != "" && originAllowed(origin, allowed) {
			c.Header("Access-Control-Allow-Origin", origin) // Echo the origin back
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization")
		}
		// Short-circuit preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// originAllowed reports whether the origin passes the allow-list (empty list allows all)
func originAllowed(origin string, allowed []string) bool {
	if len(allowed) == 0 {
		return true // No list configured, echo any origin
	}
	for _, o := range allowed {
		if o == origin {
			return true
		}
	}
	return false
}
