package model

import "time"

// FrequentItem counts how often a user ordered a product with one exact
// customization, updated when an order is marked received.
type FrequentItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index" json:"user_id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	ProductIcon   string    `json:"icon"`
	BasePrice     int64     `json:"price"`
	OrderCount    int       `json:"order_count"`
	Customization string    `gorm:"type:jsonb" json:"customization"`
	LastOrderedAt time.Time `json:"last_ordered_at"`
}
