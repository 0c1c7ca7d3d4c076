package model

import "time"

const (
	TxnPayment = "payment"
	TxnRefund  = "refund"
)

// Transaction is an append-only balance ledger row. Never updated.
type Transaction struct {
	ID            string    `gorm:"primaryKey;size:12" json:"id"`
	UserID        uint      `gorm:"index" json:"user_id"`
	Type          string    `json:"type"`
	Amount        int64     `json:"amount"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	OrderID       string    `gorm:"size:8" json:"order_id"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}
