package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"souq/internal/model"
)

// SellerRepository defines seller persistence operations.
type SellerRepository interface {
	Create(ctx context.Context, seller *model.Seller) error
	Update(ctx context.Context, seller *model.Seller) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Seller, error)
	FindByEmail(ctx context.Context, email string) (*model.Seller, error)
	FindByUsername(ctx context.Context, username string) (*model.Seller, error)
	List(ctx context.Context) ([]model.Seller, error)
}

type sellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository creates a new seller repository.
func NewSellerRepository(db *gorm.DB) SellerRepository {
	return &sellerRepository{db: db}
}

func (r *sellerRepository) Create(ctx context.Context, seller *model.Seller) error {
	return r.db.WithContext(ctx).Create(seller).Error
}

func (r *sellerRepository) Update(ctx context.Context, seller *model.Seller) error {
	return r.db.WithContext(ctx).Save(seller).Error
}

func (r *sellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Seller, error) {
	var seller model.Seller
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

func (r *sellerRepository) FindByEmail(ctx context.Context, email string) (*model.Seller, error) {
	var seller model.Seller
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

func (r *sellerRepository) FindByUsername(ctx context.Context, username string) (*model.Seller, error) {
	var seller model.Seller
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

// List returns all sellers, newest registration first, for the admin
// vetting view.
func (r *sellerRepository) List(ctx context.Context) ([]model.Seller, error) {
	var sellers []model.Seller
	if err := r.db.WithContext(ctx).Order("registered_at DESC").Find(&sellers).Error; err != nil {
		return nil, err
	}
	return sellers, nil
}
