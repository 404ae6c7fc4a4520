package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"souq/internal/auth"
	apperrors "souq/internal/errors"
	"souq/internal/model"
	"souq/internal/otp"
)

func newTestAuthService(sellers *MockSellerRepository, buyers *MockBuyerRepository, admins *MockAdminRepository) AuthService {
	jwtService := auth.NewJWTService("test-secret")
	otpService := NewOTPService(otp.NewMemoryStore(), newStubEmailSender(false), newStubSMSSender(false), true)
	return NewAuthService(sellers, buyers, admins, jwtService, otpService)
}

func TestAuthService_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	sellerID := uuid.New()

	tests := []struct {
		name          string
		email         string
		password      string
		role          string
		setupMock     func(*MockSellerRepository, *MockBuyerRepository)
		expectedError error
		expectedRole  string
	}{
		{
			name:     "successful seller login",
			email:    "seller@example.com",
			password: "password123",
			role:     "seller",
			setupMock: func(mSellers *MockSellerRepository, mBuyers *MockBuyerRepository) {
				mSellers.On("FindByEmail", mock.Anything, "seller@example.com").Return(&model.Seller{
					ID:           sellerID,
					FullName:     "Test Seller",
					Email:        "seller@example.com",
					PasswordHash: string(hash),
				}, nil)
			},
			expectedRole: "seller",
		},
		{
			name:     "successful buyer login",
			email:    "buyer@example.com",
			password: "password123",
			role:     "buyer",
			setupMock: func(mSellers *MockSellerRepository, mBuyers *MockBuyerRepository) {
				mBuyers.On("FindByEmail", mock.Anything, "buyer@example.com").Return(&model.Buyer{
					ID:           uuid.New(),
					FullName:     "Test Buyer",
					Email:        "buyer@example.com",
					PasswordHash: string(hash),
				}, nil)
			},
			expectedRole: "buyer",
		},
		{
			name:     "wrong password",
			email:    "seller@example.com",
			password: "wrong",
			role:     "seller",
			setupMock: func(mSellers *MockSellerRepository, mBuyers *MockBuyerRepository) {
				mSellers.On("FindByEmail", mock.Anything, "seller@example.com").Return(&model.Seller{
					ID:           sellerID,
					Email:        "seller@example.com",
					PasswordHash: string(hash),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown account",
			email:    "nobody@example.com",
			password: "password123",
			role:     "seller",
			setupMock: func(mSellers *MockSellerRepository, mBuyers *MockBuyerRepository) {
				mSellers.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:          "invalid role",
			email:         "seller@example.com",
			password:      "password123",
			role:          "superuser",
			setupMock:     func(mSellers *MockSellerRepository, mBuyers *MockBuyerRepository) {},
			expectedError: apperrors.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSellers := new(MockSellerRepository)
			mockBuyers := new(MockBuyerRepository)
			mockAdmins := new(MockAdminRepository)
			tt.setupMock(mockSellers, mockBuyers)

			svc := newTestAuthService(mockSellers, mockBuyers, mockAdmins)
			token, user, err := svc.Login(context.Background(), tt.email, tt.password, tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.expectedRole, user.Role)
				assert.Equal(t, tt.email, user.Email)
			}

			mockSellers.AssertExpectations(t)
			mockBuyers.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginTokenCarriesClaims(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	sellerID := uuid.New()

	mockSellers := new(MockSellerRepository)
	mockBuyers := new(MockBuyerRepository)
	mockAdmins := new(MockAdminRepository)
	mockSellers.On("FindByEmail", mock.Anything, "seller@example.com").Return(&model.Seller{
		ID:           sellerID,
		Email:        "seller@example.com",
		PasswordHash: string(hash),
		IsVerified:   true,
	}, nil)

	jwtService := auth.NewJWTService("test-secret")
	otpService := NewOTPService(otp.NewMemoryStore(), newStubEmailSender(false), newStubSMSSender(false), true)
	svc := NewAuthService(mockSellers, mockBuyers, mockAdmins, jwtService, otpService)

	token, _, err := svc.Login(context.Background(), "seller@example.com", "password123", "seller")
	assert.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, sellerID, claims.UserID)
	assert.Equal(t, auth.RoleSeller, claims.Role)
	assert.True(t, claims.IsVerified)
}

func TestAuthService_RegisterFirstAdmin(t *testing.T) {
	tests := []struct {
		name          string
		adminCount    int64
		expectedError error
	}{
		{
			name:       "first admin registers while table is empty",
			adminCount: 0,
		},
		{
			name:          "registration closes once an admin exists",
			adminCount:    1,
			expectedError: apperrors.ErrAdminExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSellers := new(MockSellerRepository)
			mockBuyers := new(MockBuyerRepository)
			mockAdmins := new(MockAdminRepository)

			mockAdmins.On("Count", mock.Anything).Return(tt.adminCount, nil)
			if tt.expectedError == nil {
				mockAdmins.On("FindByEmail", mock.Anything, "root@example.com").Return(nil, gorm.ErrRecordNotFound)
				mockAdmins.On("Create", mock.Anything, mock.AnythingOfType("*model.Admin")).Return(nil)
			}

			svc := newTestAuthService(mockSellers, mockBuyers, mockAdmins)
			token, user, err := svc.RegisterFirstAdmin(context.Background(), "Root Admin", "root@example.com", "password123")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, "admin", user.Role)
			}
			mockAdmins.AssertExpectations(t)
		})
	}
}

func TestAuthService_BuyerManagement(t *testing.T) {
	buyerID := uuid.New()

	t.Run("create rejects a duplicate email", func(t *testing.T) {
		mockSellers := new(MockSellerRepository)
		mockBuyers := new(MockBuyerRepository)
		mockAdmins := new(MockAdminRepository)
		mockBuyers.On("FindByEmail", mock.Anything, "buyer@example.com").Return(&model.Buyer{
			ID:    buyerID,
			Email: "buyer@example.com",
		}, nil)

		svc := newTestAuthService(mockSellers, mockBuyers, mockAdmins)
		user, err := svc.CreateBuyer(context.Background(), "Test Buyer", "buyer@example.com", "password123")

		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
		assert.Nil(t, user)
		mockBuyers.AssertExpectations(t)
	})

	t.Run("create stores the account without issuing a token", func(t *testing.T) {
		mockSellers := new(MockSellerRepository)
		mockBuyers := new(MockBuyerRepository)
		mockAdmins := new(MockAdminRepository)
		mockBuyers.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockBuyers.On("Create", mock.Anything, mock.AnythingOfType("*model.Buyer")).Return(nil)

		svc := newTestAuthService(mockSellers, mockBuyers, mockAdmins)
		user, err := svc.CreateBuyer(context.Background(), "Test Buyer", "new@example.com", "password123")

		assert.NoError(t, err)
		assert.Equal(t, "buyer", user.Role)
		assert.Equal(t, "new@example.com", user.Email)
		mockBuyers.AssertExpectations(t)
	})

	t.Run("delete unknown buyer", func(t *testing.T) {
		mockSellers := new(MockSellerRepository)
		mockBuyers := new(MockBuyerRepository)
		mockAdmins := new(MockAdminRepository)
		mockBuyers.On("FindByID", mock.Anything, buyerID).Return(nil, gorm.ErrRecordNotFound)

		svc := newTestAuthService(mockSellers, mockBuyers, mockAdmins)
		err := svc.DeleteBuyer(context.Background(), buyerID)

		assert.ErrorIs(t, err, apperrors.ErrBuyerNotFound)
		mockBuyers.AssertExpectations(t)
	})

	t.Run("delete removes the buyer", func(t *testing.T) {
		mockSellers := new(MockSellerRepository)
		mockBuyers := new(MockBuyerRepository)
		mockAdmins := new(MockAdminRepository)
		mockBuyers.On("FindByID", mock.Anything, buyerID).Return(&model.Buyer{ID: buyerID}, nil)
		mockBuyers.On("Delete", mock.Anything, buyerID).Return(nil)

		svc := newTestAuthService(mockSellers, mockBuyers, mockAdmins)
		err := svc.DeleteBuyer(context.Background(), buyerID)

		assert.NoError(t, err)
		mockBuyers.AssertExpectations(t)
	})

	t.Run("list returns all buyers", func(t *testing.T) {
		mockSellers := new(MockSellerRepository)
		mockBuyers := new(MockBuyerRepository)
		mockAdmins := new(MockAdminRepository)
		mockBuyers.On("List", mock.Anything).Return([]model.Buyer{
			{ID: uuid.New(), Email: "a@example.com"},
			{ID: uuid.New(), Email: "b@example.com"},
		}, nil)

		svc := newTestAuthService(mockSellers, mockBuyers, mockAdmins)
		buyers, err := svc.ListBuyers(context.Background())

		assert.NoError(t, err)
		assert.Len(t, buyers, 2)
		mockBuyers.AssertExpectations(t)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), 10)
	seller := &model.Seller{
		ID:           uuid.New(),
		Email:        "seller@example.com",
		PasswordHash: string(hash),
	}

	mockSellers := new(MockSellerRepository)
	mockBuyers := new(MockBuyerRepository)
	mockAdmins := new(MockAdminRepository)
	mockSellers.On("FindByEmail", mock.Anything, "seller@example.com").Return(seller, nil)
	mockSellers.On("Update", mock.Anything, mock.AnythingOfType("*model.Seller")).Return(nil)

	jwtService := auth.NewJWTService("test-secret")
	mailer := newStubEmailSender(false)
	otpService := NewOTPService(otp.NewMemoryStore(), mailer, newStubSMSSender(false), true)
	svc := NewAuthService(mockSellers, mockBuyers, mockAdmins, jwtService, otpService)

	_, err := svc.RequestPasswordReset(context.Background(), "seller@example.com")
	assert.NoError(t, err)
	code := mailer.sent["seller@example.com"]
	assert.Len(t, code, 6)

	// Wrong code leaves the password untouched.
	err = svc.ResetPassword(context.Background(), "seller@example.com", "000000", "newpassword")
	assert.ErrorIs(t, err, apperrors.ErrOTPMismatch)

	err = svc.ResetPassword(context.Background(), "seller@example.com", code, "newpassword")
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(seller.PasswordHash), []byte("newpassword")))
}
