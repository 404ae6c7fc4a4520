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
	"souq/internal/repository"
)

// RegisterSellerInput carries the seller registration form plus the
// stored paths of the three uploaded identity documents.
type RegisterSellerInput struct {
	FullName          string
	Age               int
	Email             string
	Phone             string
	Username          string
	Password          string
	Country           string
	State             string
	StreetAddress     string
	ZipCode           string
	GovernmentID      string
	Passport          string
	Selfie            string
	BusinessRegNumber string
	BankDetails       string
}

// SellerService handles seller onboarding and admin vetting.
type SellerService interface {
	Register(ctx context.Context, in RegisterSellerInput) (string, *UserInfo, error)
	List(ctx context.Context) ([]model.Seller, error)
	SetVerified(ctx context.Context, sellerID uuid.UUID, verified bool) (*model.Seller, error)
}

type sellerService struct {
	sellerRepo repository.SellerRepository
	jwtService *auth.JWTService
}

// NewSellerService creates a new seller service.
func NewSellerService(sellerRepo repository.SellerRepository, jwtService *auth.JWTService) SellerService {
	return &sellerService{
		sellerRepo: sellerRepo,
		jwtService: jwtService,
	}
}

// Register creates a seller account. The account starts unverified and
// stays so until an admin reviews the uploaded documents.
func (s *sellerService) Register(ctx context.Context, in RegisterSellerInput) (string, *UserInfo, error) {
	if existing, err := s.sellerRepo.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return "", nil, apperrors.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check seller email: %w", err)
	}
	if existing, err := s.sellerRepo.FindByUsername(ctx, in.Username); err == nil && existing != nil {
		return "", nil, apperrors.ErrUsernameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check seller username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	seller := &model.Seller{
		ID:                uuid.New(),
		FullName:          in.FullName,
		Age:               in.Age,
		Email:             in.Email,
		Phone:             in.Phone,
		Username:          in.Username,
		PasswordHash:      string(hash),
		Country:           in.Country,
		State:             in.State,
		StreetAddress:     in.StreetAddress,
		ZipCode:           in.ZipCode,
		GovernmentID:      in.GovernmentID,
		Passport:          in.Passport,
		Selfie:            in.Selfie,
		BusinessRegNumber: in.BusinessRegNumber,
		BankDetails:       in.BankDetails,
		IsVerified:        false,
		IsActive:          true,
	}

	if err := s.sellerRepo.Create(ctx, seller); err != nil {
		return "", nil, fmt.Errorf("create seller: %w", err)
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
}

// List returns all sellers for the admin vetting view.
func (s *sellerService) List(ctx context.Context) ([]model.Seller, error) {
	sellers, err := s.sellerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	return sellers, nil
}

// SetVerified flips the admin-controlled verification flag after
// document review.
func (s *sellerService) SetVerified(ctx context.Context, sellerID uuid.UUID, verified bool) (*model.Seller, error) {
	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSellerNotFound
		}
		return nil, fmt.Errorf("find seller: %w", err)
	}

	seller.IsVerified = verified
	if err := s.sellerRepo.Update(ctx, seller); err != nil {
		return nil, fmt.Errorf("update seller: %w", err)
	}
	return seller, nil
}
