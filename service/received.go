package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cafe-backend/menu"
	"cafe-backend/model"
)

// MarkReceived completes an order: status delivered plus delivered_at. A COD
// order still pending payment gets its payment_time set too, since receipt
// substitutes for payment confirmation. Frequent-item bookkeeping runs after
// commit and never fails the operation.
func (s *OrderService) MarkReceived(ctx context.Context, userID uint, orderID string) error {
	now := time.Now()
	var itemsRaw []byte

	err := s.runTx(ctx, func(tx *sql.Tx) error {
		var ownerID uint
		var status, method string
		err := tx.QueryRowContext(ctx, `
			SELECT user_id, status, payment_method, items
			FROM orders WHERE id = $1 FOR UPDATE`, orderID).
			Scan(&ownerID, &status, &method, &itemsRaw)
		if err == sql.ErrNoRows {
			return ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if ownerID != userID {
			return ErrNotOwner
		}
		if status == model.StatusCancelled {
			return ErrOrderState
		}

		if method == model.PaymentCOD && status == model.StatusPendingPayment {
			_, err = tx.ExecContext(ctx, `
				UPDATE orders SET status = $1, payment_time = $2, delivered_at = $2
				WHERE id = $3`, model.StatusDelivered, now, orderID)
		} else {
			_, err = tx.ExecContext(ctx, `
				UPDATE orders SET status = $1, delivered_at = $2
				WHERE id = $3`, model.StatusDelivered, now, orderID)
		}
		if err != nil {
			return fmt.Errorf("mark delivered: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateOrders(ctx, userID)
	if err := s.recordFrequentItems(ctx, userID, itemsRaw, now); err != nil {
		log.Printf("frequent items not recorded for order %s: %v", orderID, err)
	}
	return nil
}

// customization is the dedup key for frequent items: same product with the
// same options counts as one entry.
type customization struct {
	Size    string   `json:"size,omitempty"`
	Sugar   int      `json:"sugar,omitempty"`
	Ice     int      `json:"ice,omitempty"`
	Milk    string   `json:"milk,omitempty"`
	Upsells []string `json:"upsells,omitempty"`
}

func (s *OrderService) recordFrequentItems(ctx context.Context, userID uint, itemsRaw []byte, now time.Time) error {
	var items []model.LineItem
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return fmt.Errorf("decode items: %w", err)
	}

	for _, it := range items {
		if it.ProductID == "" {
			continue
		}
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		custJSON, err := json.Marshal(customization{
			Size: it.Size, Sugar: it.Sugar, Ice: it.Ice, Milk: it.Milk, Upsells: it.Upsells,
		})
		if err != nil {
			return fmt.Errorf("encode customization: %w", err)
		}

		var id uint
		err = s.DB.QueryRowContext(ctx, `
			SELECT id FROM frequent_items
			WHERE user_id = $1 AND product_id = $2 AND customization = $3`,
			userID, it.ProductID, custJSON).Scan(&id)
		switch {
		case err == sql.ErrNoRows:
			name := it.ProductName
			icon := "🍽️"
			if p, ok := menu.Find(it.ProductID); ok {
				icon = p.Icon
				if name == "" {
					name = p.Name
				}
			}
			if _, err := s.DB.ExecContext(ctx, `
				INSERT INTO frequent_items
				(user_id, product_id, product_name, product_icon, base_price, order_count, customization, last_ordered_at)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
				userID, it.ProductID, name, icon, it.Price, qty, custJSON, now); err != nil {
				return fmt.Errorf("insert frequent item: %w", err)
			}
		case err != nil:
			return fmt.Errorf("lookup frequent item: %w", err)
		default:
			if _, err := s.DB.ExecContext(ctx, `
				UPDATE frequent_items
				SET order_count = order_count + $1, last_ordered_at = $2
				WHERE id = $3`, qty, now, id); err != nil {
				return fmt.Errorf("update frequent item: %w", err)
			}
		}
	}
	return nil
}
