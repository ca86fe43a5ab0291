package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"crypto_bank/internal/domain" // Importing domain models
	"crypto_bank/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// customersCacheKey caches the full customer listing
const customersCacheKey = "customers:all"

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name  string `json:"name"`  // Customer name
	Email string `json:"email"` // Email address
	Phone string `json:"phone"` // Optional phone number
}

// ListCustomersHandler returns all customers
func ListCustomersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context() // Context for Redis operations
		// Try to serve the listing from cache
		customers := make([]domain.Customer, 0)
		found, err := utils.GetCache(ctx, rdb, customersCacheKey, &customers)
		if err == nil && found {
			c.JSON(http.StatusOK, customers) // Return cached listing
			return
		}
		// If not in cache, fetch from DB
		if err := db.Find(&customers).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}
		_ = utils.SetCache(ctx, rdb, customersCacheKey, customers, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, customers)                                           // Return customer listing
	}
}

// CreateCustomerHandler persists a new customer
func CreateCustomerHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCustomerRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Both name and email are required, phone is optional
		if req.Name == "" || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and email required"})
			return
		}
		// Fast-path duplicate check; the unique index on email is the
		// authoritative guard against the insert race
		var existing domain.Customer
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer email already in use"})
			return
		}
		customer := domain.Customer{Name: req.Name, Email: req.Email, Phone: req.Phone}
		// Attempt to create the customer in the database
		if err := db.Create(&customer).Error; err != nil {
			// If creation fails (e.g., duplicate email from a concurrent insert), return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer email already in use"})
			return
		}
		// Log successful creation
		logrus.WithFields(logrus.Fields{
			"customer_id": customer.ID, // New customer ID
		}).Info("Customer created")
		// Invalidate the customer listing cache
		_ = utils.DeleteCache(c.Request.Context(), rdb, customersCacheKey)
		c.JSON(http.StatusCreated, customer) // Return the created record with its generated ID
	}
}

// DeleteCustomerHandler removes a customer and all of its wallets (admin only)
func DeleteCustomerHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the customer ID from the path
		if err != nil {
			// Non-numeric ID cannot reference a customer
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		var customer domain.Customer // Fetch customer from database
		if err := db.First(&customer, id).Error; err != nil {
			// If customer not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		// Delete the customer's wallets and the customer as one atomic unit
		err = db.Transaction(func(tx *gorm.DB) error {
			// Delete child wallets first so no orphan can ever be observed
			if err := tx.Where("customer_id = ?", customer.ID).Delete(&domain.CryptoWallet{}).Error; err != nil {
				return err // Return error to rollback
			}
			// Delete the customer row
			if err := tx.Delete(&customer).Error; err != nil {
				return err // Return error to rollback
			}
			return nil // Commit transaction
		})
		// Handle transaction result
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"customer_id": customer.ID, // Customer ID
				"error":       err.Error(), // Error message
			}).Error("Customer delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
			return
		}
		// Log successful cascade delete
		logrus.WithFields(logrus.Fields{
			"customer_id": customer.ID, // Deleted customer ID
		}).Info("Customer deleted with wallets")
		// Invalidate the customer listing cache
		_ = utils.DeleteCache(c.Request.Context(), rdb, customersCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
	}
}
