package model

import "time"

// PromoCode is a percentage discount token. MaxUses == 0 means unlimited,
// ExpiresAt == nil means no expiry.
type PromoCode struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Code            string     `gorm:"uniqueIndex" json:"code"`
	DiscountPercent int        `json:"discount_percent"`
	MaxUses         int        `json:"max_uses"`
	UsedCount       int        `json:"used_count"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}
