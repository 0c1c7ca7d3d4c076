package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cafe-backend/model"
)

// checkPromo applies the validity rules to an already-loaded promo row.
func checkPromo(p model.PromoCode, now time.Time) error {
	if p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		return ErrPromoExpired
	}
	if p.MaxUses > 0 && p.UsedCount >= p.MaxUses {
		return ErrPromoExhausted
	}
	return nil
}

// DiscountFor computes the promo discount on a subtotal. The shipping fee is
// never discounted.
func DiscountFor(subtotal int64, percent int) int64 {
	return subtotal * int64(percent) / 100
}

// ValidatePromo is the read-only check behind POST /promo/validate. It does
// not consume a use.
func (s *OrderService) ValidatePromo(ctx context.Context, code string) (model.PromoCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var p model.PromoCode
	var expires sql.NullTime
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, code, discount_percent, max_uses, used_count, expires_at
		FROM promo_codes WHERE code = $1`, code).
		Scan(&p.ID, &p.Code, &p.DiscountPercent, &p.MaxUses, &p.UsedCount, &expires)
	if err == sql.ErrNoRows {
		return p, ErrPromoNotFound
	}
	if err != nil {
		return p, fmt.Errorf("query promo: %w", err)
	}
	if expires.Valid {
		p.ExpiresAt = &expires.Time
	}
	return p, checkPromo(p, time.Now())
}
