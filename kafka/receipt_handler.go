package kafka

import (
	"encoding/json"
	"log"

	"cafe-backend/mailer"
)

type PaymentPaidEvent struct {
	EventType string `json:"event_type"`
	Data      struct {
		OrderID    string `json:"order_id"`
		UserID     uint   `json:"user_id"`
		Amount     int64  `json:"amount"`
		NewBalance int64  `json:"new_balance"`
		Email      string `json:"email"`
		PaidAt     string `json:"paid_at"`
	} `json:"data"`
}

// PaymentPaidHandler sends the payment receipt email when a payment.paid
// event arrives. Receipt delivery is decoupled from the payment transaction
// itself, which has already committed.
func PaymentPaidHandler(m *mailer.Mailer) func([]byte) {
	return func(msg []byte) {
		var event PaymentPaidEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			log.Printf("invalid payment.paid payload: %v", err)
			return
		}
		if event.Data.Email == "" {
			log.Printf("payment.paid for order %s has no email, skipping receipt", event.Data.OrderID)
			return
		}

		m.SendReceipt(event.Data.Email, event.Data.OrderID, event.Data.Amount, event.Data.NewBalance)
	}
}
