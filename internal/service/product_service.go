package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"souq/internal/cache"
	apperrors "souq/internal/errors"
	"souq/internal/model"
	"souq/internal/repository"
)

const (
	publicCatalogKey = "catalog:public"
	publicCatalogTTL = time.Minute
)

// SellerInfo is the public display form of a product's owning seller.
// A missing seller record degrades to a placeholder instead of failing
// the request.
type SellerInfo struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
}

// ProductView is a product joined with its seller's display info.
type ProductView struct {
	model.Product
	Seller *SellerInfo `json:"seller"`
}

// ProductDetail additionally carries the approver's display name.
type ProductDetail struct {
	ProductView
	ApprovedBy *SellerInfo `json:"approvedByInfo,omitempty"`
}

// CreateProductInput carries the fields a seller submits for a new listing.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	SubCategory string
	Sizes       []string
	Bestseller  bool
	Condition   model.Condition
	Images      []string
}

// UpdateProductInput carries optional field updates; empty values keep
// the stored ones.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       *decimal.Decimal
	Category    string
	SubCategory string
	Sizes       []string
	Condition   model.Condition
	Images      []string
}

// ProductService implements the catalog and the approval workflow.
type ProductService interface {
	Create(ctx context.Context, sellerID uuid.UUID, in CreateProductInput) (*model.Product, error)
	PublicList(ctx context.Context) ([]ProductView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProductDetail, error)
	SellerProducts(ctx context.Context, sellerID uuid.UUID) ([]ProductView, error)
	UpdateByOwner(ctx context.Context, sellerID, productID uuid.UUID, in UpdateProductInput) (*model.Product, error)
	DeleteByOwner(ctx context.Context, sellerID, productID uuid.UUID) error
	AdminList(ctx context.Context, statusFilter string) ([]ProductView, error)
	UpdateStatus(ctx context.Context, adminID, productID uuid.UUID, status model.ApprovalStatus, rejectionReason string) (*model.Product, error)
	AdminDelete(ctx context.Context, productID uuid.UUID) error
}

type productService struct {
	productRepo repository.ProductRepository
	sellerRepo  repository.SellerRepository
	adminRepo   repository.AdminRepository
	cache       *cache.Client
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	sellerRepo repository.SellerRepository,
	adminRepo repository.AdminRepository,
	cacheClient *cache.Client,
) ProductService {
	return &productService{
		productRepo: productRepo,
		sellerRepo:  sellerRepo,
		adminRepo:   adminRepo,
		cache:       cacheClient,
	}
}

// Create stores a new listing for the seller. Status always starts
// pending regardless of input.
func (s *productService) Create(ctx context.Context, sellerID uuid.UUID, in CreateProductInput) (*model.Product, error) {
	sizes := in.Sizes
	if len(sizes) == 0 {
		sizes = []string{"S", "M", "L"}
	}
	condition := in.Condition
	if condition == "" {
		condition = model.ConditionNew
	}
	subCategory := in.SubCategory
	if subCategory == "" {
		subCategory = in.Category
	}

	product := &model.Product{
		ID:             uuid.New(),
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		Category:       in.Category,
		SubCategory:    subCategory,
		Sizes:          sizes,
		Bestseller:     in.Bestseller,
		Condition:      condition,
		Images:         in.Images,
		SellerID:       sellerID,
		ApprovalStatus: model.ApprovalPending,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.invalidateCatalog(ctx)
	return product, nil
}

// PublicList returns approved products, newest first, with seller
// display names. Results are cached briefly.
func (s *productService) PublicList(ctx context.Context) ([]ProductView, error) {
	if data, _ := s.cache.Get(ctx, publicCatalogKey); data != nil {
		var views []ProductView
		if err := json.Unmarshal(data, &views); err == nil {
			return views, nil
		}
	}

	products, err := s.productRepo.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("list approved products: %w", err)
	}
	views := s.withSellerInfo(ctx, products, false)

	if payload, err := json.Marshal(views); err == nil {
		_ = s.cache.Set(ctx, publicCatalogKey, payload, publicCatalogTTL)
	}
	return views, nil
}

// GetByID returns a single product with seller and approver info.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*ProductDetail, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	views := s.withSellerInfo(ctx, []model.Product{*product}, true)
	detail := &ProductDetail{ProductView: views[0]}

	if product.ApprovedByID != nil {
		if admin, err := s.adminRepo.FindByID(ctx, *product.ApprovedByID); err == nil {
			detail.ApprovedBy = &SellerInfo{ID: admin.ID.String(), FullName: admin.FullName}
		}
	}
	return detail, nil
}

// SellerProducts returns all of the seller's products regardless of status.
func (s *productService) SellerProducts(ctx context.Context, sellerID uuid.UUID) ([]ProductView, error) {
	products, err := s.productRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller products: %w", err)
	}
	return s.withSellerInfo(ctx, products, true), nil
}

// UpdateByOwner applies field updates to the seller's own product.
// Editing an approved product demotes it back to pending and discards
// the prior approval metadata.
func (s *productService) UpdateByOwner(ctx context.Context, sellerID, productID uuid.UUID, in UpdateProductInput) (*model.Product, error) {
	product, err := s.findOwned(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != "" {
		product.Category = in.Category
	}
	if in.SubCategory != "" {
		product.SubCategory = in.SubCategory
	}
	if len(in.Sizes) > 0 {
		product.Sizes = in.Sizes
	}
	if in.Condition != "" {
		product.Condition = in.Condition
	}
	if len(in.Images) > 0 {
		product.Images = in.Images
	}

	if product.ApprovalStatus == model.ApprovalApproved {
		product.ApprovalStatus = model.ApprovalPending
		product.ApprovedByID = nil
		product.ApprovalDate = nil
		product.RejectionReason = ""
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.invalidateCatalog(ctx)
	return product, nil
}

// DeleteByOwner removes the seller's own product.
func (s *productService) DeleteByOwner(ctx context.Context, sellerID, productID uuid.UUID) error {
	if _, err := s.findOwned(ctx, sellerID, productID); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.invalidateCatalog(ctx)
	return nil
}

// AdminList returns products filtered by approval status; "all" lists
// every product.
func (s *productService) AdminList(ctx context.Context, statusFilter string) ([]ProductView, error) {
	var (
		products []model.Product
		err      error
	)
	if statusFilter == "" || statusFilter == "all" {
		products, err = s.productRepo.ListAll(ctx)
	} else {
		status := model.ApprovalStatus(statusFilter)
		if !status.Valid() {
			return nil, apperrors.ErrInvalidStatus
		}
		products, err = s.productRepo.ListByStatus(ctx, status)
	}
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return s.withSellerInfo(ctx, products, true), nil
}

// UpdateStatus moves a pending product to approved or rejected,
// recording the acting admin and the decision time. Both target states
// are reachable from pending only.
func (s *productService) UpdateStatus(ctx context.Context, adminID, productID uuid.UUID, status model.ApprovalStatus, rejectionReason string) (*model.Product, error) {
	if status != model.ApprovalApproved && status != model.ApprovalRejected {
		return nil, apperrors.ErrInvalidStatus
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if product.ApprovalStatus != model.ApprovalPending {
		return nil, apperrors.ErrNotPending
	}

	now := time.Now()
	product.ApprovalStatus = status
	product.ApprovedByID = &adminID
	product.ApprovalDate = &now
	if status == model.ApprovalRejected {
		product.RejectionReason = rejectionReason
	} else {
		product.RejectionReason = ""
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product status: %w", err)
	}
	s.invalidateCatalog(ctx)
	return product, nil
}

// AdminDelete removes any product regardless of owner.
func (s *productService) AdminDelete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProductNotFound
		}
		return fmt.Errorf("find product: %w", err)
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.invalidateCatalog(ctx)
	return nil
}

// findOwned loads a product and checks ownership. Not-found and
// not-owner collapse into the same error so the endpoint does not leak
// which products exist.
func (s *productService) findOwned(ctx context.Context, sellerID, productID uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotOwner
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product.SellerID != sellerID {
		return nil, apperrors.ErrNotOwner
	}
	return product, nil
}

// withSellerInfo joins products with their sellers' display info,
// resolving each distinct seller once per call.
func (s *productService) withSellerInfo(ctx context.Context, products []model.Product, includeEmail bool) []ProductView {
	sellers := make(map[uuid.UUID]*SellerInfo)
	views := make([]ProductView, 0, len(products))

	for _, p := range products {
		info, ok := sellers[p.SellerID]
		if !ok {
			if seller, err := s.sellerRepo.FindByID(ctx, p.SellerID); err == nil {
				info = &SellerInfo{ID: seller.ID.String(), FullName: seller.FullName}
				if includeEmail {
					info.Email = seller.Email
				}
			} else {
				info = &SellerInfo{ID: p.SellerID.String(), FullName: "Unknown Seller"}
			}
			sellers[p.SellerID] = info
		}
		views = append(views, ProductView{Product: p, Seller: info})
	}
	return views
}

func (s *productService) invalidateCatalog(ctx context.Context) {
	_ = s.cache.Delete(ctx, publicCatalogKey)
}
