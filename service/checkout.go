package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cafe-backend/model"
)

// ShippingFee is the flat delivery fee in VND.
const ShippingFee int64 = 30000

type CheckoutInput struct {
	UserID           uint
	Items            []model.LineItem
	PaymentMethod    string
	PromoCode        string
	CustomerName     string
	CustomerPhone    string
	DeliveryDistrict string
	DeliveryWard     string
	DeliveryStreet   string
	SpecialNotes     string
}

type CheckoutResult struct {
	OrderID     string `json:"order_id"`
	Total       int64  `json:"total"`
	Discount    int64  `json:"discount"`
	ShippingFee int64  `json:"shipping_fee"`
}

// Subtotal sums unit price times quantity over the line items. Unit prices
// arrive already adjusted for size and add-ons.
func Subtotal(items []model.LineItem) int64 {
	var sum int64
	for _, it := range items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		sum += it.Price * int64(qty)
	}
	return sum
}

// Checkout creates an order in pending_payment. The promo lookup, balance
// precheck, order insert, and promo used_count increment commit as one
// transaction: a rejected checkout leaves no trace, including the increment.
// No balance is debited here; that happens at OTP verification.
func (s *OrderService) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := Subtotal(in.Items)
	code := strings.ToUpper(strings.TrimSpace(in.PromoCode))
	now := time.Now()
	res := &CheckoutResult{OrderID: NewOrderID(), ShippingFee: ShippingFee}

	err := s.runTx(ctx, func(tx *sql.Tx) error {
		res.Discount = 0
		var promoID uint
		promoApplied := false

		if code != "" {
			var p model.PromoCode
			var expires sql.NullTime
			err := tx.QueryRowContext(ctx, `
				SELECT id, discount_percent, max_uses, used_count, expires_at
				FROM promo_codes WHERE code = $1 FOR UPDATE`, code).
				Scan(&p.ID, &p.DiscountPercent, &p.MaxUses, &p.UsedCount, &expires)
			switch {
			case err == sql.ErrNoRows:
				// invalid code at checkout is ignored, not an error
			case err != nil:
				return fmt.Errorf("lock promo: %w", err)
			default:
				if expires.Valid {
					p.ExpiresAt = &expires.Time
				}
				if checkPromo(p, now) == nil {
					res.Discount = DiscountFor(subtotal, p.DiscountPercent)
					promoID = p.ID
					promoApplied = true
				}
			}
		}

		res.Total = subtotal - res.Discount + ShippingFee

		if in.PaymentMethod == model.PaymentBalance {
			var balance int64
			err := tx.QueryRowContext(ctx,
				`SELECT balance FROM users WHERE id = $1 FOR UPDATE`, in.UserID).Scan(&balance)
			if err == sql.ErrNoRows {
				return ErrUserNotFound
			}
			if err != nil {
				return fmt.Errorf("load balance: %w", err)
			}
			if balance < res.Total {
				return ErrInsufficientBalance
			}
		}

		itemsJSON, err := json.Marshal(in.Items)
		if err != nil {
			return fmt.Errorf("encode items: %w", err)
		}

		appliedCode := ""
		if promoApplied {
			appliedCode = code
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO orders
			(id, user_id, items, total, discount, shipping_fee, status, payment_method, promo_code,
			 customer_name, customer_phone, delivery_district, delivery_ward, delivery_street,
			 special_notes, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
			res.OrderID, in.UserID, itemsJSON, res.Total, res.Discount, ShippingFee,
			model.StatusPendingPayment, in.PaymentMethod, appliedCode,
			in.CustomerName, in.CustomerPhone,
			strings.TrimSpace(in.DeliveryDistrict), strings.TrimSpace(in.DeliveryWard),
			strings.TrimSpace(in.DeliveryStreet), in.SpecialNotes, now,
		); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		if promoApplied {
			if _, err := tx.ExecContext(ctx,
				`UPDATE promo_codes SET used_count = used_count + 1 WHERE id = $1`, promoID); err != nil {
				return fmt.Errorf("increment promo: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateOrders(ctx, in.UserID)
	s.Producer.PublishOrderCreated(map[string]interface{}{
		"event_type": "order.created",
		"data": map[string]interface{}{
			"order_id":       res.OrderID,
			"user_id":        in.UserID,
			"total":          res.Total,
			"discount":       res.Discount,
			"payment_method": in.PaymentMethod,
			"created_at":     now.Format(time.RFC3339),
		},
	})
	return res, nil
}
