package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/repository"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockProductRepo struct{ mock.Mock }

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepo) List(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Product, int32, error) {
	args := m.Called(ctx, vendorID, page, pageSize)
	var products []domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]domain.Product)
	}
	return products, args.Get(1).(int32), args.Error(2)
}

func (m *MockProductRepo) IncrementAvailable(ctx context.Context, id int32, delta int32) (*domain.Product, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type MockQuotationRepo struct{ mock.Mock }

func (m *MockQuotationRepo) Create(ctx context.Context, q *domain.Quotation) error {
	return m.Called(ctx, q).Error(0)
}

func (m *MockQuotationRepo) GetByID(ctx context.Context, id int32) (*domain.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quotation), args.Error(1)
}

func (m *MockQuotationRepo) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Quotation, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quotation), args.Error(1)
}

func (m *MockQuotationRepo) ListAll(ctx context.Context) ([]domain.Quotation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quotation), args.Error(1)
}

func (m *MockQuotationRepo) UpdateStatus(ctx context.Context, id int32, status domain.QuotationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockOrderRepo struct{ mock.Mock }

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepo) ApplyReturn(ctx context.Context, order *domain.Order, deltas []domain.InventoryDelta) error {
	return m.Called(ctx, order, deltas).Error(0)
}

func (m *MockOrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

type MockReturnRequestRepo struct{ mock.Mock }

func (m *MockReturnRequestRepo) Create(ctx context.Context, req *domain.ReturnRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockReturnRequestRepo) GetByID(ctx context.Context, id int32) (*domain.ReturnRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnRequest), args.Error(1)
}

func (m *MockReturnRequestRepo) Update(ctx context.Context, req *domain.ReturnRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockReturnRequestRepo) Complete(ctx context.Context, req *domain.ReturnRequest, order *domain.Order, deltas []domain.InventoryDelta) error {
	return m.Called(ctx, req, order, deltas).Error(0)
}

func (m *MockReturnRequestRepo) ListByCustomer(ctx context.Context, customerID int32) ([]domain.ReturnRequest, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReturnRequest), args.Error(1)
}

func (m *MockReturnRequestRepo) ListByVendor(ctx context.Context, vendorID int32) ([]domain.ReturnRequest, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReturnRequest), args.Error(1)
}

type MockInvoiceRepo struct{ mock.Mock }

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Invoice, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) ListAll(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) Pay(ctx context.Context, id int32) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) ListPaidSince(ctx context.Context, vendorID int32, since time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, vendorID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

type MockPaymentRepo struct{ mock.Mock }

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendReturnRequestNotification(ctx context.Context, vendorEmail, customerName, requestNumber, orderNumber string) error {
	return m.Called(ctx, vendorEmail, customerName, requestNumber, orderNumber).Error(0)
}

func (m *MockEmailService) SendReturnRequestStatusNotification(ctx context.Context, customerEmail, requestNumber string, status domain.ReturnRequestStatus, vendorNotes string) error {
	return m.Called(ctx, customerEmail, requestNumber, status, vendorNotes).Error(0)
}

func (m *MockEmailService) SendReturnReminder(ctx context.Context, customerEmail, orderNumber string, returnDate time.Time, overdue bool) error {
	return m.Called(ctx, customerEmail, orderNumber, returnDate, overdue).Error(0)
}
