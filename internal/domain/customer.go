package domain

// Customer Model
type Customer struct {
	ID    uint   `gorm:"primaryKey" json:"id"`         // Primary key
	Name  string `gorm:"not null" json:"name"`         // Customer name
	Email string `gorm:"unique;not null" json:"email"` // Unique email address
	Phone string `json:"phone"`                        // Optional phone number
}
