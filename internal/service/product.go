package service

import (
	"context"
	"fmt"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/repository"
)

type productService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewProductService(productRepo repository.ProductRepository, userRepo repository.UserRepository) ProductService {
	return &productService{productRepo: productRepo, userRepo: userRepo}
}

func (s *productService) AddProduct(ctx context.Context, actor Actor, product *domain.Product) error {
	if !actor.IsVendor() && !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if product.Name == "" || product.DailyRate <= 0 || product.Stock <= 0 {
		return fmt.Errorf("%w: name, a positive daily rate and stock are required", domain.ErrValidation)
	}

	vendor, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return fmt.Errorf("failed to load vendor: %w", err)
	}
	product.VendorID = vendor.ID
	product.VendorName = vendor.Name
	// New stock starts fully available; availability then moves only through
	// atomic increments from returns and stock adjustments.
	product.Available = product.Stock
	if product.Status == "" {
		product.Status = domain.ProductStatusActive
	}
	return s.productRepo.Create(ctx, product)
}

func (s *productService) GetProduct(ctx context.Context, productID int32) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, productID)
}

// UpdateProduct patches catalog fields for the owning vendor or an admin. A
// stock change moves the available counter by the same delta through an
// atomic increment so it cannot clobber a concurrent return.
func (s *productService) UpdateProduct(ctx context.Context, actor Actor, productID int32, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && (!actor.IsVendor() || product.VendorID != actor.UserID) {
		return nil, domain.ErrForbidden
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.DailyRate != nil {
		if *input.DailyRate <= 0 {
			return nil, fmt.Errorf("%w: daily rate must be positive", domain.ErrValidation)
		}
		product.DailyRate = *input.DailyRate
	}
	if input.WeeklyRate != nil {
		product.WeeklyRate = *input.WeeklyRate
	}
	if input.MonthlyRate != nil {
		product.MonthlyRate = *input.MonthlyRate
	}
	if input.Deposit != nil {
		product.Deposit = *input.Deposit
	}
	if input.Status != nil {
		product.Status = *input.Status
	}

	var stockDelta int32
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, fmt.Errorf("%w: stock cannot be negative", domain.ErrValidation)
		}
		stockDelta = *input.Stock - product.Stock
		product.Stock = *input.Stock
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if stockDelta != 0 {
		updated, err := s.productRepo.IncrementAvailable(ctx, product.ID, stockDelta)
		if err != nil {
			return nil, fmt.Errorf("failed to adjust availability: %w", err)
		}
		product.Available = updated.Available
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Product, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.productRepo.List(ctx, vendorID, page, pageSize)
}
