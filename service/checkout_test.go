package service

import (
	"context"
	"testing"

	"cafe-backend/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockService(t *testing.T) (*OrderService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOrderService(db, nil, nil, nil), mock
}

func TestSubtotal(t *testing.T) {
	items := []model.LineItem{
		{ProductID: "cf_1", Quantity: 2, Price: 25000},
		{ProductID: "t_1", Quantity: 1, Price: 28000},
		{ProductID: "f_1", Price: 3000}, // zero quantity counts as one
	}
	assert.Equal(t, int64(81000), Subtotal(items))
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	svc, mock := newMockService(t)

	_, err := svc.Checkout(context.Background(), CheckoutInput{UserID: 1, PaymentMethod: model.PaymentBalance})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_Checkout_InsufficientBalance(t *testing.T) {
	svc, mock := newMockService(t)

	// subtotal 81,000 + shipping 30,000 = 111,000 against a 100,000 balance
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT balance FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(int64(100000)))
	mock.ExpectRollback()

	_, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:        7,
		PaymentMethod: model.PaymentBalance,
		Items: []model.LineItem{
			{ProductID: "cf_1", Quantity: 2, Price: 25000},
			{ProductID: "t_1", Quantity: 1, Price: 31000},
		},
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_Checkout_BalanceWithPromo(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM promo_codes WHERE code = \$1 FOR UPDATE`).
		WithArgs("SAVE10").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "discount_percent", "max_uses", "used_count", "expires_at"}).
			AddRow(uint(3), 10, 0, 12, nil))
	mock.ExpectQuery(`SELECT balance FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(int64(150000)))
	mock.ExpectExec(`INSERT INTO orders`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE promo_codes SET used_count = used_count \+ 1`).
		WithArgs(uint(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:        7,
		PaymentMethod: model.PaymentBalance,
		PromoCode:     "save10",
		Items:         []model.LineItem{{ProductID: "cf_3", Quantity: 2, Price: 40000}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8000), res.Discount)
	assert.Equal(t, int64(102000), res.Total) // 80,000 - 8,000 + 30,000
	assert.Equal(t, ShippingFee, res.ShippingFee)
	assert.Len(t, res.OrderID, 8)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_Checkout_UnknownPromoIgnored(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM promo_codes WHERE code = \$1 FOR UPDATE`).
		WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "discount_percent", "max_uses", "used_count", "expires_at"}))
	mock.ExpectExec(`INSERT INTO orders`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:        2,
		PaymentMethod: model.PaymentCOD,
		PromoCode:     "nope",
		Items:         []model.LineItem{{ProductID: "f_3", Quantity: 1, Price: 40000}},
	})
	require.NoError(t, err)
	assert.Zero(t, res.Discount)
	assert.Equal(t, int64(70000), res.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_Checkout_CODSkipsBalanceCheck(t *testing.T) {
	svc, mock := newMockService(t)

	// no users query expected for cash on delivery
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:        9,
		PaymentMethod: model.PaymentCOD,
		Items:         []model.LineItem{{ProductID: "cf_1", Quantity: 1, Price: 25000}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(55000), res.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
