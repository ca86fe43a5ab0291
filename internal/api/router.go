package api

import (
	"net/http" // HTTP status codes

	"crypto_bank/internal/middleware" // Custom package for middleware
	"crypto_bank/internal/session"    // Session store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires all routes onto a gin engine
func NewRouter(db *gorm.DB, rdb *redis.Client, store *session.Store, corsOrigins string) *gin.Engine {
	r := gin.Default() // Gin router instance

	// Allow the browser client to send the session cookie cross-origin
	r.Use(middleware.CORSMiddleware(corsOrigins))

	// Liveness endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api") // All functional routes live under /api

	// Auth routes
	api.POST("/register", RegisterHandler(db))  // Registration endpoint
	api.POST("/login", LoginHandler(db, store)) // Login endpoint, sets the session cookie
	api.POST("/logout", LogoutHandler(store))   // Logout endpoint, always succeeds
	sessionGroup := api.Group("")               // Routes requiring a valid session
	sessionGroup.Use(middleware.SessionAuthMiddleware(store))
	sessionGroup.GET("/me", MeHandler(db, store))  // Current user endpoint
	sessionGroup.GET("/message", MessageHandler()) // Protected probe endpoint

	// Customer and wallet routes. Deletion is the only admin-gated
	// operation; listing and creation are deliberately open (see DESIGN.md)
	api.GET("/customers", ListCustomersHandler(db, rdb))       // List customers endpoint
	api.POST("/customers", CreateCustomerHandler(db, rdb))     // Create customer endpoint
	api.GET("/customers/:id/wallets", ListWalletsHandler(db))  // List wallets endpoint
	api.POST("/wallets", CreateWalletHandler(db))              // Create wallet endpoint
	api.PUT("/wallets/:id", UpdateWalletHandler(db))           // Partial update endpoint

	// Delete routes (protected, admin only)
	adminGroup := api.Group("")
	adminGroup.Use(middleware.SessionAuthMiddleware(store), middleware.AdminOnlyMiddleware(db, store))
	adminGroup.DELETE("/customers/:id", DeleteCustomerHandler(db, rdb)) // Cascade delete endpoint
	adminGroup.DELETE("/wallets/:id", DeleteWalletHandler(db))          // Wallet delete endpoint

	return r
}
