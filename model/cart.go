package model

import "time"

// CartItem carries the customization chosen in the UI; pricing is resolved
// against the menu at checkout time, not here.
type CartItem struct {
	ProductID string   `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Size      string   `json:"size"`
	Sugar     int      `json:"sugar"`
	Ice       int      `json:"ice"`
	Milks     []string `json:"milks"`
}

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex" json:"user_id"`
	Items     []CartItem `gorm:"serializer:json;type:jsonb" json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}
