package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/security"
)

func TestAuthService_Register(t *testing.T) {
	mockUserRepo := new(MockUserRepo)
	tokens := security.NewTokenManager("test-secret", 60)
	svc := NewAuthService(mockUserRepo, tokens)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockUserRepo.On("GetByEmail", ctx, "asha@test.com").Return(nil, domain.ErrNotFound).Once()
		mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "asha@test.com" && u.Role == domain.RoleCustomer &&
				u.PasswordHash != "" && u.PasswordHash != "s3cret99"
		})).Return(nil).Once()

		user, token, err := svc.Register(ctx, "Asha", "Asha@Test.com", "s3cret99", "")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, domain.RoleCustomer, user.Role)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mockUserRepo.On("GetByEmail", ctx, "taken@test.com").Return(&domain.User{ID: 1}, nil).Once()

		_, _, err := svc.Register(ctx, "Asha", "taken@test.com", "s3cret99", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("AdminSelfRegistrationRejected", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "Asha", "asha@test.com", "s3cret99", domain.RoleAdmin)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "Asha", "asha@test.com", "abc", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockUserRepo := new(MockUserRepo)
	tokens := security.NewTokenManager("test-secret", 60)
	svc := NewAuthService(mockUserRepo, tokens)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret99"), bcrypt.DefaultCost)
	user := &domain.User{ID: 7, Email: "asha@test.com", PasswordHash: string(hash), Role: domain.RoleCustomer}

	t.Run("Success", func(t *testing.T) {
		mockUserRepo.On("GetByEmail", ctx, "asha@test.com").Return(user, nil).Once()

		loggedIn, token, err := svc.Login(ctx, "asha@test.com", "s3cret99")
		assert.NoError(t, err)
		assert.Equal(t, int32(7), loggedIn.ID)

		claims, err := tokens.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), claims.UserID)
		assert.Equal(t, domain.RoleCustomer, claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockUserRepo.On("GetByEmail", ctx, "asha@test.com").Return(user, nil).Once()

		_, _, err := svc.Login(ctx, "asha@test.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		mockUserRepo.On("GetByEmail", ctx, "ghost@test.com").Return(nil, domain.ErrNotFound).Once()

		_, _, err := svc.Login(ctx, "ghost@test.com", "s3cret99")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	mockUserRepo := new(MockUserRepo)
	tokens := security.NewTokenManager("test-secret", 60)
	svc := NewAuthService(mockUserRepo, tokens)
	ctx := context.Background()

	t.Run("PatchesOnlyProvidedFields", func(t *testing.T) {
		existing := &domain.User{ID: 7, Name: "Asha", Email: "asha@test.com", Phone: "111"}
		mockUserRepo.On("GetByID", ctx, int32(7)).Return(existing, nil).Once()
		mockUserRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == 7 && u.Name == "Asha K" && u.Phone == "222" && u.Email == "asha@test.com"
		})).Return(nil).Once()

		name, phone := "  Asha K  ", "222"
		user, err := svc.UpdateProfile(ctx, 7, UpdateProfileInput{Name: &name, Phone: &phone})
		assert.NoError(t, err)
		assert.Equal(t, "Asha K", user.Name)
	})

	t.Run("EmptyNameRejected", func(t *testing.T) {
		mockUserRepo := new(MockUserRepo)
		svc := NewAuthService(mockUserRepo, tokens)
		mockUserRepo.On("GetByID", ctx, int32(7)).Return(&domain.User{ID: 7, Name: "Asha"}, nil).Once()

		name := "   "
		_, err := svc.UpdateProfile(ctx, 7, UpdateProfileInput{Name: &name})
		assert.ErrorIs(t, err, domain.ErrValidation)
		mockUserRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	mockUserRepo.AssertExpectations(t)
}
