package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/logger"
	"rentbridge-backend/internal/repository"
)

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	dueDays     int
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	dueDays int,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		dueDays:     dueDays,
	}
}

// CreateForOrder mints the order's invoice: same line items, same totals,
// due a configured number of days out.
func (s *invoiceService) CreateForOrder(ctx context.Context, order *domain.Order) (*domain.Invoice, error) {
	now := time.Now()
	inv := &domain.Invoice{
		InvoiceNumber: newDocumentNumber("INV"),
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerID:    order.CustomerID,
		CustomerName:  order.CustomerName,
		VendorID:      order.VendorID,
		VendorName:    order.VendorName,
		Subtotal:      order.Subtotal,
		TaxAmount:     order.TaxAmount,
		TotalAmount:   order.TotalAmount,
		BalanceAmount: order.TotalAmount,
		Status:        domain.InvoiceStatusPending,
		IssueDate:     now,
		DueDate:       now.AddDate(0, 0, s.dueDays),
	}
	for _, it := range order.Items {
		inv.Items = append(inv.Items, domain.InvoiceItem{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			RentalDays:  it.RentalDays,
			DailyRate:   it.DailyRate,
			Amount:      it.Subtotal,
		})
	}
	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, actor Actor, invoiceID int32) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && inv.CustomerID != actor.UserID && inv.VendorID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, actor Actor) ([]domain.Invoice, error) {
	if actor.IsAdmin() {
		return s.invoiceRepo.ListAll(ctx)
	}
	return s.invoiceRepo.ListByCustomer(ctx, actor.UserID)
}

// PayInvoice settles the invoice in full. The repository guards the flip on
// status, so concurrent payments credit the vendor exactly once; the loser
// gets ErrInvalidTransition.
func (s *invoiceService) PayInvoice(ctx context.Context, actor Actor, invoiceID int32, method domain.PaymentMethod, notes string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && inv.CustomerID != actor.UserID {
		return nil, domain.ErrForbidden
	}

	paid, err := s.invoiceRepo.Pay(ctx, inv.ID)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		InvoiceID:     paid.ID,
		InvoiceNumber: paid.InvoiceNumber,
		Amount:        paid.TotalAmount,
		Method:        method,
		Reference:     "PAY-" + uuid.NewString(),
		Notes:         notes,
	}
	// The payment row is an audit record; the money already moved. A failure
	// here is logged, not rolled back.
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		logger.Error("failed to record payment", "invoice", paid.InvoiceNumber, "error", err)
	}

	return paid, nil
}
