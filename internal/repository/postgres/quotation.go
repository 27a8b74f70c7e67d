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

type quotationRepository struct {
	db *sql.DB
}

func NewQuotationRepository(db *sql.DB) repository.QuotationRepository {
	return &quotationRepository{db: db}
}

const quotationColumns = `id, quotation_number, customer_id, customer_name, customer_email, subtotal, tax_amount, deposit_amount, total_amount, status, valid_until, COALESCE(notes, ''), created_on, updated_on`

func scanQuotation(row interface{ Scan(...any) error }) (*domain.Quotation, error) {
	q := &domain.Quotation{}
	err := row.Scan(&q.ID, &q.QuotationNumber, &q.CustomerID, &q.CustomerName, &q.CustomerEmail, &q.Subtotal, &q.TaxAmount, &q.DepositAmount, &q.TotalAmount, &q.Status, &q.ValidUntil, &q.Notes, &q.CreatedOn, &q.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: quotation", domain.ErrNotFound)
		}
		return nil, err
	}
	return q, nil
}

func (r *quotationRepository) Create(ctx context.Context, q *domain.Quotation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO quotations (quotation_number, customer_id, customer_name, customer_email, subtotal, tax_amount, deposit_amount, total_amount, status, valid_until, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12) RETURNING id`
	err = tx.QueryRowContext(ctx, query, q.QuotationNumber, q.CustomerID, q.CustomerName, q.CustomerEmail, q.Subtotal, q.TaxAmount, q.DepositAmount, q.TotalAmount, q.Status, q.ValidUntil, q.Notes, time.Now()).Scan(&q.ID)
	if err != nil {
		return err
	}

	itemQuery := `INSERT INTO quotation_items (quotation_id, product_id, product_name, quantity, rental_days, daily_rate, subtotal)
	              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	for i := range q.Items {
		it := &q.Items[i]
		if err := tx.QueryRowContext(ctx, itemQuery, q.ID, it.ProductID, it.ProductName, it.Quantity, it.RentalDays, it.DailyRate, it.Subtotal).Scan(&it.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *quotationRepository) GetByID(ctx context.Context, id int32) (*domain.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE id = $1`
	q, err := scanQuotation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, []int32{id})
	if err != nil {
		return nil, err
	}
	q.Items = items[id]
	return q, nil
}

func (r *quotationRepository) loadItems(ctx context.Context, quotationIDs []int32) (map[int32][]domain.QuotationItem, error) {
	query := `SELECT id, quotation_id, product_id, product_name, quantity, rental_days, daily_rate, subtotal
	          FROM quotation_items WHERE quotation_id = ANY($1) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(quotationIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int32][]domain.QuotationItem)
	for rows.Next() {
		var it domain.QuotationItem
		var quotationID int32
		if err := rows.Scan(&it.ID, &quotationID, &it.ProductID, &it.ProductName, &it.Quantity, &it.RentalDays, &it.DailyRate, &it.Subtotal); err != nil {
			return nil, err
		}
		items[quotationID] = append(items[quotationID], it)
	}
	return items, rows.Err()
}

func (r *quotationRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE customer_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, customerID)
}

func (r *quotationRepository) ListAll(ctx context.Context) ([]domain.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations ORDER BY created_on DESC`
	return r.list(ctx, query)
}

func (r *quotationRepository) UpdateStatus(ctx context.Context, id int32, status domain.QuotationStatus) error {
	query := `UPDATE quotations SET status=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: quotation", domain.ErrNotFound)
	}
	return nil
}

func (r *quotationRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Quotation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotations []domain.Quotation
	var ids []int32
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, err
		}
		quotations = append(quotations, *q)
		ids = append(ids, q.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return quotations, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range quotations {
		quotations[i].Items = items[quotations[i].ID]
	}
	return quotations, nil
}
