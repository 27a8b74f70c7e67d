package service

import (
	"context"
	"fmt"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/repository"
	"rentbridge-backend/internal/utils"
)

type quotationService struct {
	quoteRepo   repository.QuotationRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	taxRate     float64
	depositDays int
}

func NewQuotationService(
	quoteRepo repository.QuotationRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	taxRatePercent float64,
	depositDays int,
) QuotationService {
	return &quotationService{
		quoteRepo:   quoteRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		taxRate:     taxRatePercent,
		depositDays: depositDays,
	}
}

func (s *quotationService) CreateQuotation(ctx context.Context, actor Actor, items []OrderItemInput, validUntil *time.Time, notes string) (*domain.Quotation, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: quotation must have at least one item", domain.ErrValidation)
	}

	customer, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	q := &domain.Quotation{
		QuotationNumber: newDocumentNumber("QT"),
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		Status:          domain.QuotationStatusSent,
		ValidUntil:      validUntil,
		Notes:           notes,
	}

	for _, in := range items {
		if in.Quantity <= 0 || in.RentalDays <= 0 {
			return nil, fmt.Errorf("%w: quantity and rental days must be positive", domain.ErrValidation)
		}
		product, err := s.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to load product %d: %w", in.ProductID, err)
		}
		rate := in.DailyRate
		if rate == 0 {
			rate = product.DailyRate
		}
		q.Items = append(q.Items, domain.QuotationItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			RentalDays:  in.RentalDays,
			DailyRate:   rate,
			Subtotal:    rate * float64(in.Quantity) * float64(in.RentalDays),
		})
	}

	totals := utils.ComputeQuotationTotals(q.Items, s.taxRate, s.depositDays)
	q.Subtotal = totals.Subtotal
	q.TaxAmount = totals.TaxAmount
	q.DepositAmount = totals.DepositAmount
	q.TotalAmount = totals.TotalAmount

	if err := s.quoteRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to create quotation: %w", err)
	}
	return q, nil
}

func (s *quotationService) GetQuotation(ctx context.Context, actor Actor, quotationID int32) (*domain.Quotation, error) {
	q, err := s.quoteRepo.GetByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && q.CustomerID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return q, nil
}

func (s *quotationService) ListQuotations(ctx context.Context, actor Actor) ([]domain.Quotation, error) {
	if actor.IsAdmin() {
		return s.quoteRepo.ListAll(ctx)
	}
	return s.quoteRepo.ListByCustomer(ctx, actor.UserID)
}

func (s *quotationService) UpdateQuotationStatus(ctx context.Context, actor Actor, quotationID int32, status domain.QuotationStatus) error {
	q, err := s.quoteRepo.GetByID(ctx, quotationID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && q.CustomerID != actor.UserID {
		return domain.ErrForbidden
	}
	return s.quoteRepo.UpdateStatus(ctx, quotationID, status)
}
