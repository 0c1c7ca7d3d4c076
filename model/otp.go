package model

import "time"

// OTPCode is an email-bound code used for registration and password reset.
type OTPCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"index" json:"email"`
	Code      string    `json:"-"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PaymentOTP is a one-time code bound to (user, order). Verification always
// matches the newest unconsumed row; issuing a new code expires older ones.
type PaymentOTP struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   string    `gorm:"index;size:8" json:"order_id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Code      string    `json:"-"`
	Amount    int64     `json:"amount"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
