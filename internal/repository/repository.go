package repository

import (
	"context"
	"time"

	"rentbridge-backend/internal/domain"
)

// OrderFilter narrows and sorts order listings. Zero-valued fields are
// ignored. SortBy must be one of the whitelisted column names understood by
// the implementation; implementations fall back to created_on.
type OrderFilter struct {
	CustomerID int32
	VendorID   int32
	Statuses   []domain.OrderStatus
	SortBy     string
	Ascending  bool
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update persists profile fields; it never touches wallet_balance or
	// total_revenue, which only move inside the invoice payment transaction.
	Update(ctx context.Context, user *domain.User) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	// Update persists catalog fields; the available counter is excluded and
	// only moves through atomic increments.
	Update(ctx context.Context, product *domain.Product) error
	List(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Product, int32, error)

	// IncrementAvailable applies an atomic available = available + delta and
	// returns the updated row.
	IncrementAvailable(ctx context.Context, id int32, delta int32) (*domain.Product, error)
}

type QuotationRepository interface {
	Create(ctx context.Context, q *domain.Quotation) error
	GetByID(ctx context.Context, id int32) (*domain.Quotation, error)
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Quotation, error)
	ListAll(ctx context.Context) ([]domain.Quotation, error)
	UpdateStatus(ctx context.Context, id int32, status domain.QuotationStatus) error
}

type OrderRepository interface {
	// Create persists the order and its line items in one transaction and
	// fills in generated ids.
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	// Update persists the order row and its line-item counters.
	Update(ctx context.Context, order *domain.Order) error
	// ApplyReturn persists the order row, its line-item counters, and every
	// product availability increment in a single transaction. Either the
	// whole batch commits or none of it does.
	ApplyReturn(ctx context.Context, order *domain.Order, deltas []domain.InventoryDelta) error
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
}

type ReturnRequestRepository interface {
	// Create assigns the next RET number from a database sequence and
	// persists the request with its items in one transaction.
	Create(ctx context.Context, req *domain.ReturnRequest) error
	GetByID(ctx context.Context, id int32) (*domain.ReturnRequest, error)
	Update(ctx context.Context, req *domain.ReturnRequest) error
	// Complete flips the request to completed and applies the order and
	// inventory mutations in one transaction. The status flip is guarded so
	// a request can complete at most once; a lost race surfaces as
	// domain.ErrInvalidTransition.
	Complete(ctx context.Context, req *domain.ReturnRequest, order *domain.Order, deltas []domain.InventoryDelta) error
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.ReturnRequest, error)
	ListByVendor(ctx context.Context, vendorID int32) ([]domain.ReturnRequest, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id int32) (*domain.Invoice, error)
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Invoice, error)
	ListAll(ctx context.Context) ([]domain.Invoice, error)
	// Pay marks the invoice paid, settles the balance, and credits the
	// vendor's wallet and revenue, all in one transaction. The update is
	// guarded on status <> 'paid'; losing that guard surfaces as
	// domain.ErrInvalidTransition so a second payment can never credit
	// twice.
	Pay(ctx context.Context, id int32) (*domain.Invoice, error)
	ListPaidSince(ctx context.Context, vendorID int32, since time.Time) ([]domain.Invoice, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
}
