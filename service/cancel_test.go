package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectCancelRow(mock sqlmock.Sqlmock, ownerID uint, total int64, status, method string, balance int64) {
	mock.ExpectQuery(`FROM orders o JOIN users u ON u\.id = o\.user_id`).
		WithArgs("A1B2C3D4").
		WillReturnRows(sqlmock.NewRows(
			[]string{"user_id", "total", "status", "payment_method", "email", "full_name", "balance"}).
			AddRow(ownerID, total, status, method, "buyer@example.com", "Buyer", balance))
}

func TestOrderService_CancelOrder_RefundsPaidBalanceOrder(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	expectCancelRow(mock, 7, 111000, "paid", "balance", 39000)
	mock.ExpectExec(`UPDATE users SET balance = balance \+ \$1`).
		WithArgs(int64(111000), uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO transactions`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE orders SET status = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := svc.CancelOrder(context.Background(), 7, "A1B2C3D4")
	require.NoError(t, err)
	assert.Equal(t, int64(111000), res.Refund)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_CancelOrder_PendingBalanceNoRefund(t *testing.T) {
	svc, mock := newMockService(t)

	// never debited, so nothing to credit back
	mock.ExpectBegin()
	expectCancelRow(mock, 7, 111000, "pending_payment", "balance", 150000)
	mock.ExpectExec(`UPDATE orders SET status = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := svc.CancelOrder(context.Background(), 7, "A1B2C3D4")
	require.NoError(t, err)
	assert.Zero(t, res.Refund)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_CancelOrder_CODNoRefund(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	expectCancelRow(mock, 7, 70000, "preparing", "cash_on_delivery", 0)
	mock.ExpectExec(`UPDATE orders SET status = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := svc.CancelOrder(context.Background(), 7, "A1B2C3D4")
	require.NoError(t, err)
	assert.Zero(t, res.Refund)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_CancelOrder_DeliveredRejected(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	expectCancelRow(mock, 7, 111000, "delivered", "balance", 39000)
	mock.ExpectRollback()

	_, err := svc.CancelOrder(context.Background(), 7, "A1B2C3D4")
	assert.ErrorIs(t, err, ErrOrderState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_CancelOrder_NotOwner(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	expectCancelRow(mock, 3, 111000, "paid", "balance", 39000)
	mock.ExpectRollback()

	_, err := svc.CancelOrder(context.Background(), 7, "A1B2C3D4")
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_CancelOrder_NotFound(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM orders o JOIN users u ON u\.id = o\.user_id`).
		WithArgs("MISSING1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"user_id", "total", "status", "payment_method", "email", "full_name", "balance"}))
	mock.ExpectRollback()

	_, err := svc.CancelOrder(context.Background(), 7, "MISSING1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
