package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"souq/internal/model"
)

// BuyerRepository defines buyer persistence operations.
type BuyerRepository interface {
	Create(ctx context.Context, buyer *model.Buyer) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Buyer, error)
	FindByEmail(ctx context.Context, email string) (*model.Buyer, error)
	List(ctx context.Context) ([]model.Buyer, error)
}

type buyerRepository struct {
	db *gorm.DB
}

// NewBuyerRepository creates a new buyer repository.
func NewBuyerRepository(db *gorm.DB) BuyerRepository {
	return &buyerRepository{db: db}
}

func (r *buyerRepository) Create(ctx context.Context, buyer *model.Buyer) error {
	return r.db.WithContext(ctx).Create(buyer).Error
}

func (r *buyerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Buyer, error) {
	var buyer model.Buyer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&buyer).Error; err != nil {
		return nil, err
	}
	return &buyer, nil
}

func (r *buyerRepository) FindByEmail(ctx context.Context, email string) (*model.Buyer, error) {
	var buyer model.Buyer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&buyer).Error; err != nil {
		return nil, err
	}
	return &buyer, nil
}

func (r *buyerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Buyer{}, "id = ?", id).Error
}

// List returns all buyers, newest first, for the admin user panel.
func (r *buyerRepository) List(ctx context.Context) ([]model.Buyer, error) {
	var buyers []model.Buyer
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&buyers).Error; err != nil {
		return nil, err
	}
	return buyers, nil
}
