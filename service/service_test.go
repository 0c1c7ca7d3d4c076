package service

import (
	"context"
	"strings"
	"testing"

	"cafe-backend/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateOTP()
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "non-digit in %q", code)
		}
	}
}

func TestNewOrderID(t *testing.T) {
	id := NewOrderID()
	assert.Len(t, id, 8)
	assert.Equal(t, strings.ToUpper(id), id)
	assert.NotEqual(t, id, NewOrderID())
}

func TestNewTxnID(t *testing.T) {
	id := NewTxnID()
	assert.Len(t, id, 12)
	assert.NotContains(t, id, "-")
}

func TestOrderService_MarkReceived_COD(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM orders WHERE id = \$1 FOR UPDATE`).
		WithArgs("A1B2C3D4").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "status", "payment_method", "items"}).
			AddRow(uint(7), "pending_payment", "cash_on_delivery",
				[]byte(`[{"product_id":"cf_1","product_name":"Espresso","quantity":2,"price":25000}]`)))
	mock.ExpectExec(`UPDATE orders SET status = \$1, payment_time = \$2, delivered_at = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// frequent-item bookkeeping runs outside the transaction
	mock.ExpectQuery(`SELECT id FROM frequent_items`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`INSERT INTO frequent_items`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := svc.MarkReceived(context.Background(), 7, "A1B2C3D4")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_MarkReceived_RepeatItemIncrements(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM orders WHERE id = \$1 FOR UPDATE`).
		WithArgs("A1B2C3D4").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "status", "payment_method", "items"}).
			AddRow(uint(7), "paid", "balance",
				[]byte(`[{"product_id":"cf_3","quantity":1,"size":"L","price":45000}]`)))
	mock.ExpectExec(`UPDATE orders SET status = \$1, delivered_at = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT id FROM frequent_items`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uint(11)))
	mock.ExpectExec(`UPDATE frequent_items`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.MarkReceived(context.Background(), 7, "A1B2C3D4")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_MarkReceived_CancelledRejected(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM orders WHERE id = \$1 FOR UPDATE`).
		WithArgs("A1B2C3D4").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "status", "payment_method", "items"}).
			AddRow(uint(7), model.StatusCancelled, "balance", []byte(`[]`)))
	mock.ExpectRollback()

	err := svc.MarkReceived(context.Background(), 7, "A1B2C3D4")
	assert.ErrorIs(t, err, ErrOrderState)
	assert.NoError(t, mock.ExpectationsWereMet())
}
