package domain

// CryptoWallet Model
type CryptoWallet struct {
	ID         uint    `gorm:"primaryKey" json:"id"`              // Primary key
	WalletName string  `gorm:"not null" json:"wallet_name"`       // Wallet display name
	Balance    float64 `gorm:"not null;default:0" json:"balance"` // Wallet balance
	CustomerID uint    `gorm:"not null;index" json:"customer_id"` // Foreign key to Customer
}
