package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"rentbridge-backend/internal/domain"
)

func paidInvoiceRow(total float64, vendorID int32) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "invoice_number", "order_id", "order_number", "customer_id", "customer_name", "vendor_id", "vendor_name", "subtotal", "tax_amount", "total_amount", "paid_amount", "balance_amount", "status", "issue_date", "due_date", "created_on", "updated_on"}).
		AddRow(1, "INV-A1B2C3D4", 1, "RO-A", 7, "Asha", vendorID, "HeavyCo", total, 0, total, total, 0, "paid", now, now, now, now)
}

func TestInvoiceRepository_Pay_CreditsVendorOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewInvoiceRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`status <> 'paid' RETURNING`)).
		WithArgs(sqlmock.AnyArg(), int32(1)).
		WillReturnRows(paidInvoiceRow(1180, 3))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET wallet_balance = wallet_balance + $1, total_revenue = total_revenue + $1`)).
		WithArgs(float64(1180), sqlmock.AnyArg(), int32(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	inv, err := repo.Pay(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, inv.Status)
	assert.Zero(t, inv.BalanceAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepository_Pay_SecondPaymentLosesGuard(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewInvoiceRepository(db)

	// guard matches no row: the invoice is already paid
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`status <> 'paid' RETURNING`)).
		WithArgs(sqlmock.AnyArg(), int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err = repo.Pay(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepository_Pay_SkipsCreditWithoutVendor(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewInvoiceRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`status <> 'paid' RETURNING`)).
		WithArgs(sqlmock.AnyArg(), int32(1)).
		WillReturnRows(paidInvoiceRow(500, 0))
	mock.ExpectCommit()

	inv, err := repo.Pay(context.Background(), 1)
	assert.NoError(t, err)
	assert.Zero(t, inv.VendorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
