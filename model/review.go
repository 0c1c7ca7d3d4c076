package model

import "time"

// Review is one-per-(user, product); resubmitting replaces the old rating.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index:idx_review_user_product,unique" json:"user_id"`
	ProductID  string    `gorm:"index:idx_review_user_product,unique" json:"product_id"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text,omitempty"`
	OrderID    string    `gorm:"size:8" json:"order_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
