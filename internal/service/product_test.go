package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentbridge-backend/internal/domain"
)

func TestProductService_AddProduct(t *testing.T) {
	mockProductRepo := new(MockProductRepo)
	mockUserRepo := new(MockUserRepo)
	svc := NewProductService(mockProductRepo, mockUserRepo)
	ctx := context.Background()
	vendor := Actor{UserID: 3, Role: domain.RoleVendor}

	t.Run("StockStartsFullyAvailable", func(t *testing.T) {
		mockUserRepo.On("GetByID", ctx, int32(3)).Return(&domain.User{ID: 3, Name: "Rao Rentals"}, nil).Once()
		mockProductRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return p.Available == 4 && p.VendorID == 3 && p.VendorName == "Rao Rentals" &&
				p.Status == domain.ProductStatusActive
		})).Return(nil).Once()

		err := svc.AddProduct(ctx, vendor, &domain.Product{Name: "Excavator", DailyRate: 500, Stock: 4})
		assert.NoError(t, err)
	})

	t.Run("CustomerForbidden", func(t *testing.T) {
		err := svc.AddProduct(ctx, Actor{UserID: 9, Role: domain.RoleCustomer}, &domain.Product{Name: "Excavator", DailyRate: 500, Stock: 4})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	mockProductRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	vendor := Actor{UserID: 3, Role: domain.RoleVendor}

	existing := func() *domain.Product {
		return &domain.Product{ID: 11, Name: "Excavator", DailyRate: 500, Stock: 4, Available: 2, VendorID: 3, Status: domain.ProductStatusActive}
	}

	t.Run("PatchesFields", func(t *testing.T) {
		mockProductRepo := new(MockProductRepo)
		svc := NewProductService(mockProductRepo, new(MockUserRepo))
		mockProductRepo.On("GetByID", ctx, int32(11)).Return(existing(), nil).Once()
		mockProductRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return p.DailyRate == 650 && p.Name == "Excavator" && p.Stock == 4
		})).Return(nil).Once()

		rate := 650.0
		product, err := svc.UpdateProduct(ctx, vendor, 11, UpdateProductInput{DailyRate: &rate})
		assert.NoError(t, err)
		assert.Equal(t, 650.0, product.DailyRate)
		mockProductRepo.AssertNotCalled(t, "IncrementAvailable", ctx, mock.Anything, mock.Anything)
		mockProductRepo.AssertExpectations(t)
	})

	t.Run("StockChangeMovesAvailabilityByDelta", func(t *testing.T) {
		mockProductRepo := new(MockProductRepo)
		svc := NewProductService(mockProductRepo, new(MockUserRepo))
		mockProductRepo.On("GetByID", ctx, int32(11)).Return(existing(), nil).Once()
		mockProductRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return p.Stock == 6
		})).Return(nil).Once()
		mockProductRepo.On("IncrementAvailable", ctx, int32(11), int32(2)).
			Return(&domain.Product{ID: 11, Stock: 6, Available: 4}, nil).Once()

		stock := int32(6)
		product, err := svc.UpdateProduct(ctx, vendor, 11, UpdateProductInput{Stock: &stock})
		assert.NoError(t, err)
		assert.Equal(t, int32(4), product.Available)
		mockProductRepo.AssertExpectations(t)
	})

	t.Run("NegativeStockRejected", func(t *testing.T) {
		mockProductRepo := new(MockProductRepo)
		svc := NewProductService(mockProductRepo, new(MockUserRepo))
		mockProductRepo.On("GetByID", ctx, int32(11)).Return(existing(), nil).Once()

		stock := int32(-1)
		_, err := svc.UpdateProduct(ctx, vendor, 11, UpdateProductInput{Stock: &stock})
		assert.ErrorIs(t, err, domain.ErrValidation)
		mockProductRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	t.Run("ForeignVendorForbidden", func(t *testing.T) {
		mockProductRepo := new(MockProductRepo)
		svc := NewProductService(mockProductRepo, new(MockUserRepo))
		mockProductRepo.On("GetByID", ctx, int32(11)).Return(existing(), nil).Once()

		rate := 650.0
		_, err := svc.UpdateProduct(ctx, Actor{UserID: 8, Role: domain.RoleVendor}, 11, UpdateProductInput{DailyRate: &rate})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("AdminMayEditAnyProduct", func(t *testing.T) {
		mockProductRepo := new(MockProductRepo)
		svc := NewProductService(mockProductRepo, new(MockUserRepo))
		mockProductRepo.On("GetByID", ctx, int32(11)).Return(existing(), nil).Once()
		mockProductRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

		status := domain.ProductStatusInactive
		product, err := svc.UpdateProduct(ctx, Actor{UserID: 1, Role: domain.RoleAdmin}, 11, UpdateProductInput{Status: &status})
		assert.NoError(t, err)
		assert.Equal(t, domain.ProductStatusInactive, product.Status)
		mockProductRepo.AssertExpectations(t)
	})
}
