package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"rentbridge-backend/internal/domain"
)

func TestReturnRequestRepository_Create_AssignsSequenceNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewReturnRequestRepository(db)

	req := &domain.ReturnRequest{
		OrderID:     1,
		OrderNumber: "RO-A",
		CustomerID:  7,
		Status:      domain.ReturnRequestStatusPending,
		Items: []domain.ReturnRequestItem{
			{ProductID: 11, ProductName: "Excavator", Quantity: 3, ReturnQuantity: 2, Condition: domain.ConditionGood},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`nextval('return_request_numbers')`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request_number"}).AddRow(5, "RET-00005"))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO return_request_items`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectCommit()

	err = repo.Create(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, int32(5), req.ID)
	assert.Equal(t, "RET-00005", req.RequestNumber)
	assert.Equal(t, int32(9), req.Items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReturnRequestRepository_Complete_GuardsAgainstDoubleCompletion(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewReturnRequestRepository(db)

	req := &domain.ReturnRequest{ID: 5, RequestNumber: "RET-00005", Status: domain.ReturnRequestStatusCompleted}
	order := &domain.Order{ID: 1, Status: domain.OrderStatusPickedUp}

	// the guarded update finds no row still in an open status
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`status IN ('pending', 'approved', 'scheduled')`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = repo.Complete(context.Background(), req, order, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReturnRequestRepository_Complete_AppliesOrderAndInventory(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewReturnRequestRepository(db)

	req := &domain.ReturnRequest{ID: 5, RequestNumber: "RET-00005", Status: domain.ReturnRequestStatusCompleted}
	order := &domain.Order{
		ID:     1,
		Status: domain.OrderStatusReturned,
		Items:  []domain.OrderItem{{ID: 10, ProductID: 11, Quantity: 3, ReturnedQuantity: 3}},
	}
	deltas := []domain.InventoryDelta{{ProductID: 11, Delta: 2}}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE return_requests SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE order_items SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET available = available + $1`)).
		WithArgs(int32(2), sqlmock.AnyArg(), int32(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.Complete(context.Background(), req, order, deltas)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
