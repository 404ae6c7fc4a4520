package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"souq/internal/auth"
	apperrors "souq/internal/errors"
	"souq/internal/model"
	"souq/internal/otp"
	"souq/internal/repository"
)

const bcryptCost = 10

// UserInfo is the public shape of an authenticated account returned
// alongside a session token.
type UserInfo struct {
	ID         string `json:"id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified,omitempty"`
}

// AuthService handles login, admin registration, buyer registration,
// and OTP-gated password reset.
type AuthService interface {
	Login(ctx context.Context, email, password, role string) (string, *UserInfo, error)
	AdminLogin(ctx context.Context, email, password string) (string, *UserInfo, error)
	RegisterFirstAdmin(ctx context.Context, fullName, email, password string) (string, *UserInfo, error)
	RegisterAdmin(ctx context.Context, fullName, email, password string) (*UserInfo, error)
	RegisterBuyer(ctx context.Context, fullName, email, password string) (string, *UserInfo, error)
	ListBuyers(ctx context.Context) ([]model.Buyer, error)
	CreateBuyer(ctx context.Context, fullName, email, password string) (*UserInfo, error)
	DeleteBuyer(ctx context.Context, id uuid.UUID) error
	RequestPasswordReset(ctx context.Context, email string) (*OTPResult, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type authService struct {
	sellerRepo repository.SellerRepository
	buyerRepo  repository.BuyerRepository
	adminRepo  repository.AdminRepository
	jwtService *auth.JWTService
	otpService OTPService
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	sellerRepo repository.SellerRepository,
	buyerRepo repository.BuyerRepository,
	adminRepo repository.AdminRepository,
	jwtService *auth.JWTService,
	otpService OTPService,
) AuthService {
	return &authService{
		sellerRepo: sellerRepo,
		buyerRepo:  buyerRepo,
		adminRepo:  adminRepo,
		jwtService: jwtService,
		otpService: otpService,
	}
}

// Login authenticates a buyer or seller and returns a session token.
func (s *authService) Login(ctx context.Context, email, password, role string) (string, *UserInfo, error) {
	switch role {
	case auth.RoleSeller:
		seller, err := s.sellerRepo.FindByEmail(ctx, email)
		if err != nil {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		if err := bcrypt.CompareHashAndPassword([]byte(seller.PasswordHash), []byte(password)); err != nil {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		token, err := s.jwtService.GenerateToken(seller.ID, auth.RoleSeller, seller.IsVerified)
		if err != nil {
			return "", nil, fmt.Errorf("generate token: %w", err)
		}
		return token, &UserInfo{
			ID:         seller.ID.String(),
			FullName:   seller.FullName,
			Email:      seller.Email,
			Role:       auth.RoleSeller,
			IsVerified: seller.IsVerified,
		}, nil

	case auth.RoleBuyer:
		buyer, err := s.buyerRepo.FindByEmail(ctx, email)
		if err != nil {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		if err := bcrypt.CompareHashAndPassword([]byte(buyer.PasswordHash), []byte(password)); err != nil {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		token, err := s.jwtService.GenerateToken(buyer.ID, auth.RoleBuyer, false)
		if err != nil {
			return "", nil, fmt.Errorf("generate token: %w", err)
		}
		return token, &UserInfo{
			ID:       buyer.ID.String(),
			FullName: buyer.FullName,
			Email:    buyer.Email,
			Role:     auth.RoleBuyer,
		}, nil

	default:
		return "", nil, apperrors.ErrInvalidRole
	}
}

// AdminLogin authenticates an admin account.
func (s *authService) AdminLogin(ctx context.Context, email, password string) (string, *UserInfo, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	token, err := s.jwtService.GenerateToken(admin.ID, auth.RoleAdmin, false)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, adminInfo(admin), nil
}

// RegisterFirstAdmin bootstraps the first admin account. It is open
// only while zero admins exist; afterwards admin creation requires an
// authenticated admin actor.
func (s *authService) RegisterFirstAdmin(ctx context.Context, fullName, email, password string) (string, *UserInfo, error) {
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return "", nil, apperrors.ErrAdminExists
	}

	admin, err := s.createAdmin(ctx, fullName, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.jwtService.GenerateToken(admin.ID, auth.RoleAdmin, false)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, adminInfo(admin), nil
}

// RegisterAdmin creates an additional admin account. The route gating
// guarantees the caller is an authenticated admin.
func (s *authService) RegisterAdmin(ctx context.Context, fullName, email, password string) (*UserInfo, error) {
	admin, err := s.createAdmin(ctx, fullName, email, password)
	if err != nil {
		return nil, err
	}
	return adminInfo(admin), nil
}

// RegisterBuyer creates a buyer account and returns a session token.
func (s *authService) RegisterBuyer(ctx context.Context, fullName, email, password string) (string, *UserInfo, error) {
	buyer, err := s.createBuyer(ctx, fullName, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.jwtService.GenerateToken(buyer.ID, auth.RoleBuyer, false)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, buyerInfo(buyer), nil
}

// ListBuyers returns all buyer accounts for the admin user panel.
func (s *authService) ListBuyers(ctx context.Context) ([]model.Buyer, error) {
	buyers, err := s.buyerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list buyers: %w", err)
	}
	return buyers, nil
}

// CreateBuyer creates a buyer account on behalf of an admin. No session
// token is issued; the buyer logs in with the assigned credentials.
func (s *authService) CreateBuyer(ctx context.Context, fullName, email, password string) (*UserInfo, error) {
	buyer, err := s.createBuyer(ctx, fullName, email, password)
	if err != nil {
		return nil, err
	}
	return buyerInfo(buyer), nil
}

// DeleteBuyer removes a buyer account.
func (s *authService) DeleteBuyer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.buyerRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBuyerNotFound
		}
		return fmt.Errorf("find buyer: %w", err)
	}
	if err := s.buyerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete buyer: %w", err)
	}
	return nil
}

func (s *authService) createBuyer(ctx context.Context, fullName, email, password string) (*model.Buyer, error) {
	if existing, err := s.buyerRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check buyer existence: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	buyer := &model.Buyer{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.buyerRepo.Create(ctx, buyer); err != nil {
		return nil, fmt.Errorf("create buyer: %w", err)
	}
	return buyer, nil
}

// RequestPasswordReset issues an email OTP for a seller account.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) (*OTPResult, error) {
	if _, err := s.sellerRepo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmailNotFound
		}
		return nil, fmt.Errorf("find seller: %w", err)
	}
	return s.otpService.SendEmailOTP(ctx, email)
}

// ResetPassword verifies the OTP and replaces the seller's password.
func (s *authService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := s.otpService.Verify(ctx, email, code, otp.ChannelEmail); err != nil {
		return err
	}

	seller, err := s.sellerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrEmailNotFound
		}
		return fmt.Errorf("find seller: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	seller.PasswordHash = string(hash)

	if err := s.sellerRepo.Update(ctx, seller); err != nil {
		return fmt.Errorf("update seller password: %w", err)
	}
	return nil
}

func (s *authService) createAdmin(ctx context.Context, fullName, email, password string) (*model.Admin, error) {
	if existing, err := s.adminRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check admin existence: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Admin{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

func adminInfo(admin *model.Admin) *UserInfo {
	return &UserInfo{
		ID:       admin.ID.String(),
		FullName: admin.FullName,
		Email:    admin.Email,
		Role:     auth.RoleAdmin,
	}
}

func buyerInfo(buyer *model.Buyer) *UserInfo {
	return &UserInfo{
		ID:       buyer.ID.String(),
		FullName: buyer.FullName,
		Email:    buyer.Email,
		Role:     auth.RoleBuyer,
	}
}
