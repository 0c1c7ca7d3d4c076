package service

import "errors"

// Failure taxonomy for the order/payment workflow. Controllers map these to
// HTTP status codes; anything else is a store error.
var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUserNotFound        = errors.New("user not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrNotOwner            = errors.New("not authorized")
	ErrOrderState          = errors.New("order is not in a valid state for this action")
	ErrPromoNotFound       = errors.New("invalid promo code")
	ErrPromoExpired        = errors.New("promo code expired")
	ErrPromoExhausted      = errors.New("promo code usage limit reached")
	ErrOTPNotFound         = errors.New("no OTP found for this order")
	ErrOTPUsed             = errors.New("OTP already used")
	ErrOTPExpired          = errors.New("OTP expired")
	ErrOTPMismatch         = errors.New("invalid OTP")
)
