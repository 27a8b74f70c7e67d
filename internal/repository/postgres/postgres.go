package postgres

import (
	"database/sql"

	"rentbridge-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ProductRepository
	repository.QuotationRepository
	repository.OrderRepository
	repository.ReturnRequestRepository
	repository.InvoiceRepository
	repository.PaymentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		UserRepository:          NewUserRepository(db),
		ProductRepository:       NewProductRepository(db),
		QuotationRepository:     NewQuotationRepository(db),
		OrderRepository:         NewOrderRepository(db),
		ReturnRequestRepository: NewReturnRequestRepository(db),
		InvoiceRepository:       NewInvoiceRepository(db),
		PaymentRepository:       NewPaymentRepository(db),
	}
}
