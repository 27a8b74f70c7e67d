package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, COALESCE(description, ''), COALESCE(category, ''), daily_rate, weekly_rate, monthly_rate, deposit, stock, available, vendor_id, COALESCE(vendor_name, ''), status, created_on, updated_on`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	p := &domain.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.DailyRate, &p.WeeklyRate, &p.MonthlyRate, &p.Deposit, &p.Stock, &p.Available, &p.VendorID, &p.VendorName, &p.Status, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: product", domain.ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, description, category, daily_rate, weekly_rate, monthly_rate, deposit, stock, available, vendor_id, vendor_name, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.Category, p.DailyRate, p.WeeklyRate, p.MonthlyRate, p.Deposit, p.Stock, p.Available, p.VendorID, p.VendorName, p.Status, time.Now()).Scan(&p.ID)
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

// Update deliberately leaves the available counter alone so a stale
// in-memory value can never clobber a concurrent return.
func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name=$1, description=$2, category=$3, daily_rate=$4, weekly_rate=$5, monthly_rate=$6, deposit=$7, stock=$8, status=$9, updated_on=$10 WHERE id=$11`
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Category, p.DailyRate, p.WeeklyRate, p.MonthlyRate, p.Deposit, p.Stock, p.Status, time.Now(), p.ID)
	return err
}

func (r *productRepository) List(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Product, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + productColumns + ` FROM products`
	countQuery := `SELECT count(*) FROM products`
	args := []interface{}{}
	if vendorID != 0 {
		query += ` WHERE vendor_id = $1`
		countQuery += ` WHERE vendor_id = $1`
		args = append(args, vendorID)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, count, rows.Err()
}

// IncrementAvailable adjusts the available counter as an in-database
// increment so stock adjustments cannot race the return transactions, which
// move the counter the same way.
func (r *productRepository) IncrementAvailable(ctx context.Context, id int32, delta int32) (*domain.Product, error) {
	query := `UPDATE products SET available = available + $1, updated_on = $2 WHERE id = $3 RETURNING ` + productColumns
	return scanProduct(r.db.QueryRowContext(ctx, query, delta, time.Now(), id))
}
