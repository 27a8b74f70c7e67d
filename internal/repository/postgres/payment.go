package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (invoice_id, invoice_number, amount, method, reference, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.InvoiceID, p.InvoiceNumber, p.Amount, p.Method, p.Reference, p.Notes, time.Now()).Scan(&p.ID)
}
