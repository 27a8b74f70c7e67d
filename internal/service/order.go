package service

import (
	"context"
	"fmt"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/logger"
	"rentbridge-backend/internal/repository"
)

type orderService struct {
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	quoteRepo   repository.QuotationRepository
	invoiceSvc  InvoiceService
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	quoteRepo repository.QuotationRepository,
	invoiceSvc InvoiceService,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		quoteRepo:   quoteRepo,
		invoiceSvc:  invoiceSvc,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, actor Actor, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: order must have at least one item", domain.ErrValidation)
	}

	customer, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	order := &domain.Order{
		OrderNumber:   newDocumentNumber("RO"),
		QuotationID:   input.QuotationID,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		Subtotal:      input.Subtotal,
		TaxAmount:     input.TaxAmount,
		DepositAmount: input.DepositAmount,
		TotalAmount:   input.TotalAmount,
		Status:        domain.OrderStatusPending,
		PickupDate:    input.PickupDate,
		ReturnDate:    input.ReturnDate,
	}

	for _, it := range input.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", domain.ErrValidation)
		}
		product, err := s.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to load product %d: %w", it.ProductID, err)
		}
		// The vendor snapshot comes from the first line's product. Mixed-vendor
		// orders take the first vendor, matching how quotations are built.
		if order.VendorID == 0 {
			order.VendorID = product.VendorID
			order.VendorName = product.VendorName
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    it.Quantity,
			RentalDays:  it.RentalDays,
			DailyRate:   it.DailyRate,
			Subtotal:    it.Subtotal,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if input.QuotationID != nil {
		if err := s.quoteRepo.UpdateStatus(ctx, *input.QuotationID, domain.QuotationStatusConfirmed); err != nil {
			logger.Warn("failed to confirm quotation", "quotation_id", *input.QuotationID, "error", err)
		}
	}

	// Every order gets its financial shadow up front. Order creation still
	// succeeds if invoicing fails; the invoice can be recreated by support.
	if _, err := s.invoiceSvc.CreateForOrder(ctx, order); err != nil {
		logger.Error("failed to create invoice for order", "order_id", order.ID, "error", err)
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, actor Actor, orderID int32) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && order.CustomerID != actor.UserID && order.VendorID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, actor Actor) ([]domain.Order, error) {
	filter := repository.OrderFilter{SortBy: "created_on"}
	switch {
	case actor.IsAdmin():
	case actor.IsVendor():
		filter.VendorID = actor.UserID
	default:
		filter.CustomerID = actor.UserID
	}
	return s.orderRepo.List(ctx, filter)
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, actor Actor, orderID int32, status domain.OrderStatus, actualReturnDate *time.Time) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && order.VendorID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if !order.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", domain.ErrInvalidTransition, order.Status, status)
	}

	order.Status = status
	if actualReturnDate != nil {
		order.ActualReturnDate = actualReturnDate
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}
