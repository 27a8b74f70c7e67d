package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentbridge-backend/internal/domain"
)

func TestInvoiceService_PayInvoice(t *testing.T) {
	ctx := context.Background()
	customer := Actor{UserID: 7, Role: domain.RoleCustomer}

	t.Run("SettlesAndRecordsPayment", func(t *testing.T) {
		mockInvoiceRepo := new(MockInvoiceRepo)
		mockPaymentRepo := new(MockPaymentRepo)
		svc := NewInvoiceService(mockInvoiceRepo, mockPaymentRepo, 15)

		inv := &domain.Invoice{ID: 1, InvoiceNumber: "INV-A1B2C3D4", CustomerID: 7, VendorID: 3, TotalAmount: 1180, BalanceAmount: 1180, Status: domain.InvoiceStatusPending}
		paid := &domain.Invoice{ID: 1, InvoiceNumber: "INV-A1B2C3D4", CustomerID: 7, VendorID: 3, TotalAmount: 1180, PaidAmount: 1180, BalanceAmount: 0, Status: domain.InvoiceStatusPaid}
		mockInvoiceRepo.On("GetByID", ctx, int32(1)).Return(inv, nil).Once()
		mockInvoiceRepo.On("Pay", ctx, int32(1)).Return(paid, nil).Once()
		mockPaymentRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.InvoiceID == 1 && p.Amount == 1180 &&
				p.Method == domain.PaymentMethodCard && p.Reference != ""
		})).Return(nil).Once()

		result, err := svc.PayInvoice(ctx, customer, 1, domain.PaymentMethodCard, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.InvoiceStatusPaid, result.Status)
		assert.Zero(t, result.BalanceAmount)
		mockInvoiceRepo.AssertExpectations(t)
		mockPaymentRepo.AssertExpectations(t)
	})

	t.Run("SecondPaymentRejected", func(t *testing.T) {
		mockInvoiceRepo := new(MockInvoiceRepo)
		mockPaymentRepo := new(MockPaymentRepo)
		svc := NewInvoiceService(mockInvoiceRepo, mockPaymentRepo, 15)

		inv := &domain.Invoice{ID: 1, CustomerID: 7, Status: domain.InvoiceStatusPaid}
		mockInvoiceRepo.On("GetByID", ctx, int32(1)).Return(inv, nil).Once()
		mockInvoiceRepo.On("Pay", ctx, int32(1)).
			Return(nil, fmt.Errorf("%w: invoice is already paid", domain.ErrInvalidTransition)).Once()

		_, err := svc.PayInvoice(ctx, customer, 1, domain.PaymentMethodCard, "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		mockPaymentRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("ForeignCustomerForbidden", func(t *testing.T) {
		mockInvoiceRepo := new(MockInvoiceRepo)
		svc := NewInvoiceService(mockInvoiceRepo, nil, 15)

		inv := &domain.Invoice{ID: 1, CustomerID: 42, Status: domain.InvoiceStatusPending}
		mockInvoiceRepo.On("GetByID", ctx, int32(1)).Return(inv, nil).Once()

		_, err := svc.PayInvoice(ctx, customer, 1, domain.PaymentMethodCard, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestInvoiceService_CreateForOrder(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepo)
	svc := NewInvoiceService(mockInvoiceRepo, nil, 15)
	ctx := context.Background()

	order := &domain.Order{
		ID:           9,
		OrderNumber:  "RO-TEST0001",
		CustomerID:   7,
		CustomerName: "Asha",
		VendorID:     3,
		Subtotal:     1000,
		TaxAmount:    180,
		TotalAmount:  1180,
		Items: []domain.OrderItem{
			{ProductName: "Excavator", Quantity: 2, RentalDays: 5, DailyRate: 100, Subtotal: 1000},
		},
	}
	mockInvoiceRepo.On("Create", ctx, mock.MatchedBy(func(inv *domain.Invoice) bool {
		dueInDays := time.Until(inv.DueDate).Hours() / 24
		return inv.OrderID == 9 && inv.Status == domain.InvoiceStatusPending &&
			inv.TotalAmount == 1180 && inv.BalanceAmount == 1180 &&
			len(inv.Items) == 1 && dueInDays > 14 && dueInDays < 16
	})).Return(nil).Once()

	inv, err := svc.CreateForOrder(ctx, order)
	assert.NoError(t, err)
	assert.Contains(t, inv.InvoiceNumber, "INV-")
	mockInvoiceRepo.AssertExpectations(t)
}
