package api

import (
	"net/http" // HTTP status codes

	"crypto_bank/internal/domain"  // Importing domain models
	"crypto_bank/internal/session" // Session store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`    // Email address
	Password string `json:"password"` // Plaintext password, hashed before storage
	Role     string `json:"role"`     // Optional role, defaults to "user"
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`    // Email address
	Password string `json:"password"` // Plaintext password to verify
}

// RegisterHandler creates a new user account
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Both fields are required
		if req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
			return
		}
		// Fast-path duplicate check for a friendly message; the unique index
		// on email is the authoritative guard against the insert race
		var existing domain.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		role := req.Role // Role defaults to "user" when omitted
		if role == "" {
			role = "user"
		}
		user := domain.User{Email: req.Email, Password: string(hash), Role: role}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// If creation fails (e.g., duplicate email from a concurrent insert), return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,   // New user ID
			"role":    user.Role, // Assigned role
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
	}
}

// LoginHandler authenticates a user and establishes a session
func LoginHandler(db *gorm.DB, store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Establish a server-side session for the user
		token, err := store.Create(c.Request.Context(), user.ID)
		if err != nil {
			// If session creation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}
		// Hand the opaque token to the client as an HttpOnly cookie
		c.SetCookie(session.CookieName, token, int(session.TTL.Seconds()), "/", "", false, true)
		// Log successful login
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // Authenticated user ID
		}).Info("User logged in")
		c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
	}
}

// LogoutHandler clears any current session; it always succeeds
func LogoutHandler(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Destroy the server-side session if a cookie is present
		if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
			_ = store.Destroy(c.Request.Context(), token)
		}
		// Expire the cookie on the client
		c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// MeHandler returns the email and role of the session's user
func MeHandler(db *gorm.DB, store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			// The session points at a deleted user; clear it and reject
			if token, ok := c.Get("sessionToken"); ok {
				_ = store.Destroy(c.Request.Context(), token.(string))
			}
			c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Return the user's public identity
		c.JSON(http.StatusOK, gin.H{
			"user": gin.H{
				"email": user.Email, // Email address
				"role":  user.Role,  // Role
			},
		})
	}
}

// MessageHandler is a protected probe route for verifying the session
func MessageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello, authenticated user!"})
	}
}
