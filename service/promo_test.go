package service

import (
	"context"
	"testing"
	"time"

	"cafe-backend/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPromo(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name  string
		promo model.PromoCode
		want  error
	}{
		{"no limits", model.PromoCode{DiscountPercent: 10}, nil},
		{"under max uses", model.PromoCode{MaxUses: 100, UsedCount: 99}, nil},
		{"exhausted", model.PromoCode{MaxUses: 100, UsedCount: 100}, ErrPromoExhausted},
		{"expired", model.PromoCode{ExpiresAt: &past}, ErrPromoExpired},
		{"not yet expired", model.PromoCode{ExpiresAt: &future}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkPromo(tt.promo, now))
		})
	}
}

func TestDiscountFor(t *testing.T) {
	assert.Equal(t, int64(8100), DiscountFor(81000, 10))
	assert.Equal(t, int64(0), DiscountFor(81000, 0))
	// integer division truncates
	assert.Equal(t, int64(2499), DiscountFor(24995, 10))
}

func TestOrderService_ValidatePromo_Valid(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`FROM promo_codes WHERE code = \$1`).
		WithArgs("SAVE10").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "code", "discount_percent", "max_uses", "used_count", "expires_at"}).
			AddRow(uint(3), "SAVE10", 10, 0, 12, nil))

	p, err := svc.ValidatePromo(context.Background(), " save10 ")
	require.NoError(t, err)
	assert.Equal(t, 10, p.DiscountPercent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_ValidatePromo_NotFound(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`FROM promo_codes WHERE code = \$1`).
		WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "code", "discount_percent", "max_uses", "used_count", "expires_at"}))

	_, err := svc.ValidatePromo(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrPromoNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_ValidatePromo_Expired(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`FROM promo_codes WHERE code = \$1`).
		WithArgs("OLD").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "code", "discount_percent", "max_uses", "used_count", "expires_at"}).
			AddRow(uint(4), "OLD", 20, 0, 0, time.Now().Add(-time.Hour)))

	_, err := svc.ValidatePromo(context.Background(), "OLD")
	assert.ErrorIs(t, err, ErrPromoExpired)
	assert.NoError(t, mock.ExpectationsWereMet())
}
