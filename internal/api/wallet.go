package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"crypto_bank/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CreateWalletRequest represents a wallet creation request
type CreateWalletRequest struct {
	CustomerID uint    `json:"customer_id"` // Owning customer ID
	WalletName string  `json:"wallet_name"` // Wallet display name
	Balance    float64 `json:"balance"`     // Initial balance, defaults to 0
}

// UpdateWalletRequest represents a partial wallet update; only
// fields present in the request body are applied
type UpdateWalletRequest struct {
	WalletName *string  `json:"wallet_name"` // New name, if provided
	Balance    *float64 `json:"balance"`     // New balance, if provided
}

// ListWalletsHandler returns all wallets belonging to a customer.
// An unknown customer yields an empty listing, not an error.
func ListWalletsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallets := make([]domain.CryptoWallet, 0) // Empty slice so the response is [] and never null
		id, err := strconv.Atoi(c.Param("id"))    // Parse the customer ID from the path
		if err != nil {
			// Non-numeric ID owns no wallets
			c.JSON(http.StatusOK, wallets)
			return
		}
		// Fetch all wallets for the customer
		if err := db.Where("customer_id = ?", id).Find(&wallets).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wallets"})
			return
		}
		c.JSON(http.StatusOK, wallets) // Return wallet listing
	}
}

// CreateWalletHandler creates a wallet for an existing customer
func CreateWalletHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateWalletRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Customer ID and wallet name are required, balance is optional
		if req.CustomerID == 0 || req.WalletName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer ID and wallet name required"})
			return
		}
		var customer domain.Customer // The owning customer must exist
		if err := db.First(&customer, req.CustomerID).Error; err != nil {
			// If customer not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		wallet := domain.CryptoWallet{
			WalletName: req.WalletName, // Wallet display name
			Balance:    req.Balance,    // Zero when omitted from the request
			CustomerID: customer.ID,    // Owning customer
		}
		// Attempt to create the wallet in the database
		if err := db.Create(&wallet).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"customer_id": customer.ID, // Owning customer ID
				"error":       err.Error(), // Error message
			}).Error("Failed to create wallet")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wallet"})
			return
		}
		// Log successful wallet creation
		logrus.WithFields(logrus.Fields{
			"wallet_id":   wallet.ID,   // New wallet ID
			"customer_id": customer.ID, // Owning customer ID
		}).Info("Wallet created")
		c.JSON(http.StatusCreated, wallet) // Return the created record with its generated ID
	}
}

// UpdateWalletHandler applies a partial update to a wallet
func UpdateWalletHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the wallet ID from the path
		if err != nil {
			// Non-numeric ID cannot reference a wallet
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		var req UpdateWalletRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var wallet domain.CryptoWallet // Fetch wallet from database
		if err := db.First(&wallet, id).Error; err != nil {
			// If wallet not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		// Apply only the fields present in the request; omitted fields keep their prior value
		if req.WalletName != nil {
			wallet.WalletName = *req.WalletName
		}
		if req.Balance != nil {
			wallet.Balance = *req.Balance
		}
		// Persist the updated record
		if err := db.Save(&wallet).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"wallet_id": wallet.ID,   // Wallet ID
				"error":     err.Error(), // Error message
			}).Error("Failed to update wallet")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wallet"})
			return
		}
		c.JSON(http.StatusOK, wallet) // Return the updated record
	}
}

// DeleteWalletHandler removes a single wallet (admin only)
func DeleteWalletHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the wallet ID from the path
		if err != nil {
			// Non-numeric ID cannot reference a wallet
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		var wallet domain.CryptoWallet // Fetch wallet from database
		if err := db.First(&wallet, id).Error; err != nil {
			// If wallet not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		// Delete the wallet row
		if err := db.Delete(&wallet).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"wallet_id": wallet.ID,   // Wallet ID
				"error":     err.Error(), // Error message
			}).Error("Failed to delete wallet")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete wallet"})
			return
		}
		// Log successful deletion
		logrus.WithFields(logrus.Fields{
			"wallet_id":   wallet.ID,         // Deleted wallet ID
			"customer_id": wallet.CustomerID, // Owning customer ID
		}).Info("Wallet deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Wallet deleted"})
	}
}
