package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cafe-backend/model"
)

// OTPTTL is how long a payment OTP stays valid.
const OTPTTL = 10 * time.Minute

type PaymentOTPResult struct {
	OrderID string `json:"order_id"`
	Total   int64  `json:"total"`
	Email   string `json:"-"`
	Code    string `json:"-"`
}

type PaymentResult struct {
	OrderID    string `json:"order_id"`
	AmountPaid int64  `json:"amount_paid"`
	NewBalance int64  `json:"new_balance"`
	Email      string `json:"-"`
}

// SendPaymentOTP issues a fresh one-time code for a pending_payment order the
// user owns and can afford. Outstanding unconsumed codes for the same
// (user, order) pair are expired in the same transaction, so at most one code
// is ever live. The email goes out after commit, fire-and-forget.
func (s *OrderService) SendPaymentOTP(ctx context.Context, userID uint, orderID string) (*PaymentOTPResult, error) {
	now := time.Now()
	res := &PaymentOTPResult{OrderID: orderID, Code: GenerateOTP()}

	err := s.runTx(ctx, func(tx *sql.Tx) error {
		var ownerID uint
		var total int64
		var status string
		err := tx.QueryRowContext(ctx,
			`SELECT user_id, total, status FROM orders WHERE id = $1`, orderID).
			Scan(&ownerID, &total, &status)
		if err == sql.ErrNoRows {
			return ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if ownerID != userID {
			return ErrNotOwner
		}
		if status != model.StatusPendingPayment {
			return ErrOrderState
		}

		var email string
		var balance int64
		err = tx.QueryRowContext(ctx,
			`SELECT email, balance FROM users WHERE id = $1`, userID).Scan(&email, &balance)
		if err == sql.ErrNoRows {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if balance < total {
			return ErrInsufficientBalance
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE payment_otps SET expires_at = $1
			WHERE order_id = $2 AND user_id = $3 AND verified = FALSE AND expires_at > $1`,
			now, orderID, userID); err != nil {
			return fmt.Errorf("expire outstanding otps: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO payment_otps (order_id, user_id, code, amount, verified, created_at, expires_at)
			VALUES ($1,$2,$3,$4,FALSE,$5,$6)`,
			orderID, userID, res.Code, total, now, now.Add(OTPTTL)); err != nil {
			return fmt.Errorf("insert otp: %w", err)
		}

		res.Total = total
		res.Email = email
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.Mailer.SendPaymentOTP(res.Email, orderID, res.Code, res.Total)
	return res, nil
}

// VerifyPaymentOTP confirms the newest unconsumed code and settles the order:
// balance debit, status paid, OTP consumed, ledger row — one transaction with
// the OTP, order, and user rows locked, so two concurrent verifications
// cannot both debit. Each precondition failure is a distinct error.
func (s *OrderService) VerifyPaymentOTP(ctx context.Context, userID uint, orderID, code string) (*PaymentResult, error) {
	now := time.Now()
	res := &PaymentResult{OrderID: orderID}

	err := s.runTx(ctx, func(tx *sql.Tx) error {
		var otpID uint
		var stored string
		var verified bool
		var expiresAt time.Time
		err := tx.QueryRowContext(ctx, `
			SELECT id, code, verified, expires_at FROM payment_otps
			WHERE order_id = $1 AND user_id = $2
			ORDER BY created_at DESC LIMIT 1 FOR UPDATE`, orderID, userID).
			Scan(&otpID, &stored, &verified, &expiresAt)
		if err == sql.ErrNoRows {
			return ErrOTPNotFound
		}
		if err != nil {
			return fmt.Errorf("load otp: %w", err)
		}
		if verified {
			return ErrOTPUsed
		}
		if now.After(expiresAt) {
			return ErrOTPExpired
		}
		if code != stored {
			return ErrOTPMismatch
		}

		var total int64
		var status string
		err = tx.QueryRowContext(ctx,
			`SELECT total, status FROM orders WHERE id = $1 FOR UPDATE`, orderID).
			Scan(&total, &status)
		if err == sql.ErrNoRows {
			return ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if status != model.StatusPendingPayment {
			return ErrOrderState
		}

		var email string
		var balance int64
		err = tx.QueryRowContext(ctx,
			`SELECT email, balance FROM users WHERE id = $1 FOR UPDATE`, userID).
			Scan(&email, &balance)
		if err == sql.ErrNoRows {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if balance < total {
			return ErrInsufficientBalance
		}

		newBalance := balance - total
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET balance = balance - $1 WHERE id = $2`, total, userID); err != nil {
			return fmt.Errorf("debit balance: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $1, payment_time = $2 WHERE id = $3`,
			model.StatusPaid, now, orderID); err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE payment_otps SET verified = TRUE WHERE id = $1`, otpID); err != nil {
			return fmt.Errorf("consume otp: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transactions
			(id, user_id, type, amount, balance_before, balance_after, order_id, description, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			NewTxnID(), userID, model.TxnPayment, -total, balance, newBalance,
			orderID, fmt.Sprintf("Payment for order #%s", orderID), now); err != nil {
			return fmt.Errorf("append ledger: %w", err)
		}

		res.AmountPaid = total
		res.NewBalance = newBalance
		res.Email = email
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateOrders(ctx, userID)
	s.Producer.PublishPaymentPaid(map[string]interface{}{
		"event_type": "payment.paid",
		"data": map[string]interface{}{
			"order_id":    orderID,
			"user_id":     userID,
			"amount":      res.AmountPaid,
			"new_balance": res.NewBalance,
			"email":       res.Email,
			"paid_at":     now.Format(time.RFC3339),
		},
	})
	return res, nil
}
