package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/repository"

	"github.com/lib/pq"
)

type invoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, invoice_number, order_id, order_number, customer_id, customer_name, COALESCE(vendor_id, 0), COALESCE(vendor_name, ''), subtotal, tax_amount, total_amount, paid_amount, balance_amount, status, issue_date, due_date, created_on, updated_on`

func scanInvoice(row interface{ Scan(...any) error }) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.OrderID, &inv.OrderNumber, &inv.CustomerID, &inv.CustomerName, &inv.VendorID, &inv.VendorName, &inv.Subtotal, &inv.TaxAmount, &inv.TotalAmount, &inv.PaidAmount, &inv.BalanceAmount, &inv.Status, &inv.IssueDate, &inv.DueDate, &inv.CreatedOn, &inv.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: invoice", domain.ErrNotFound)
		}
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO invoices (invoice_number, order_id, order_number, customer_id, customer_name, vendor_id, vendor_name, subtotal, tax_amount, total_amount, paid_amount, balance_amount, status, issue_date, due_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, NULLIF($6, 0), $7, $8, $9, $10, 0, $11, $12, $13, $14, $15, $15) RETURNING id`
	err = tx.QueryRowContext(ctx, query, inv.InvoiceNumber, inv.OrderID, inv.OrderNumber, inv.CustomerID, inv.CustomerName, inv.VendorID, inv.VendorName, inv.Subtotal, inv.TaxAmount, inv.TotalAmount, inv.BalanceAmount, inv.Status, inv.IssueDate, inv.DueDate, time.Now()).Scan(&inv.ID)
	if err != nil {
		return err
	}

	itemQuery := `INSERT INTO invoice_items (invoice_id, product_name, quantity, rental_days, daily_rate, amount)
	              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	for i := range inv.Items {
		it := &inv.Items[i]
		if err := tx.QueryRowContext(ctx, itemQuery, inv.ID, it.ProductName, it.Quantity, it.RentalDays, it.DailyRate, it.Amount).Scan(&it.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, []int32{id})
	if err != nil {
		return nil, err
	}
	inv.Items = items[id]
	return inv, nil
}

func (r *invoiceRepository) loadItems(ctx context.Context, invoiceIDs []int32) (map[int32][]domain.InvoiceItem, error) {
	query := `SELECT id, invoice_id, COALESCE(product_name, ''), quantity, rental_days, daily_rate, amount
	          FROM invoice_items WHERE invoice_id = ANY($1) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(invoiceIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int32][]domain.InvoiceItem)
	for rows.Next() {
		var it domain.InvoiceItem
		var invoiceID int32
		if err := rows.Scan(&it.ID, &invoiceID, &it.ProductName, &it.Quantity, &it.RentalDays, &it.DailyRate, &it.Amount); err != nil {
			return nil, err
		}
		items[invoiceID] = append(items[invoiceID], it)
	}
	return items, rows.Err()
}

// Pay settles the invoice and credits the vendor in one transaction. The
// status guard rejects a second payment so the credit can only happen once
// per invoice.
func (r *invoiceRepository) Pay(ctx context.Context, id int32) (*domain.Invoice, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `UPDATE invoices SET status='paid', paid_amount=total_amount, balance_amount=0, updated_on=$1
	          WHERE id=$2 AND status <> 'paid' RETURNING ` + invoiceColumns
	inv, err := scanInvoice(tx.QueryRowContext(ctx, query, time.Now(), id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invoice is already paid", domain.ErrInvalidTransition)
		}
		return nil, err
	}

	if inv.VendorID != 0 {
		if err := creditRevenueTx(ctx, tx, inv.VendorID, inv.TotalAmount); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE customer_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, customerID)
}

func (r *invoiceRepository) ListAll(ctx context.Context) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_on DESC`
	return r.list(ctx, query)
}

func (r *invoiceRepository) ListPaidSince(ctx context.Context, vendorID int32, since time.Time) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE status = 'paid' AND updated_on >= $1`
	args := []interface{}{since}
	if vendorID != 0 {
		query += ` AND vendor_id = $2`
		args = append(args, vendorID)
	}
	query += ` ORDER BY updated_on DESC`
	return r.list(ctx, query, args...)
}

func (r *invoiceRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}
