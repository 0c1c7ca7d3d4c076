package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cafe-backend/model"
)

type CancelResult struct {
	OrderID string `json:"order_id"`
	Refund  int64  `json:"refund_amount"`
}

// CancelOrder cancels a non-terminal order the user owns. A balance order
// that was actually paid gets the full total credited back plus a refund
// ledger row; COD and never-paid orders just flip to cancelled. The refund
// email is best-effort after commit.
func (s *OrderService) CancelOrder(ctx context.Context, userID uint, orderID string) (*CancelResult, error) {
	now := time.Now()
	res := &CancelResult{OrderID: orderID}
	var email, name string

	err := s.runTx(ctx, func(tx *sql.Tx) error {
		res.Refund = 0

		var ownerID uint
		var total, balance int64
		var status, method string
		err := tx.QueryRowContext(ctx, `
			SELECT o.user_id, o.total, o.status, o.payment_method, u.email, u.full_name, u.balance
			FROM orders o JOIN users u ON u.id = o.user_id
			WHERE o.id = $1 FOR UPDATE OF o, u`, orderID).
			Scan(&ownerID, &total, &status, &method, &email, &name, &balance)
		if err == sql.ErrNoRows {
			return ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if ownerID != userID {
			return ErrNotOwner
		}
		if model.IsTerminal(status) {
			return ErrOrderState
		}

		if method == model.PaymentBalance && model.IsRefundable(status) {
			newBalance := balance + total
			if _, err := tx.ExecContext(ctx,
				`UPDATE users SET balance = balance + $1 WHERE id = $2`, total, userID); err != nil {
				return fmt.Errorf("credit refund: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO transactions
				(id, user_id, type, amount, balance_before, balance_after, order_id, description, created_at)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
				NewTxnID(), userID, model.TxnRefund, total, balance, newBalance,
				orderID, fmt.Sprintf("Refund for cancelled order #%s", orderID), now); err != nil {
				return fmt.Errorf("append ledger: %w", err)
			}
			res.Refund = total
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $1 WHERE id = $2`, model.StatusCancelled, orderID); err != nil {
			return fmt.Errorf("cancel order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateOrders(ctx, userID)
	s.Producer.PublishOrderCancelled(map[string]interface{}{
		"event_type": "order.cancelled",
		"data": map[string]interface{}{
			"order_id":      orderID,
			"user_id":       userID,
			"refund_amount": res.Refund,
			"cancelled_at":  now.Format(time.RFC3339),
		},
	})
	if res.Refund > 0 {
		go s.Mailer.SendRefundNotice(email, name, orderID, res.Refund)
	}
	return res, nil
}
