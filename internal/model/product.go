package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ApprovalStatus controls a product's public visibility.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// Condition of a listed product.
type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

// Product represents a seller listing. Only approved products appear in
// the public catalog.
type Product struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name            string          `json:"name" gorm:"size:255;not null"`
	Description     string          `json:"description" gorm:"type:text;not null"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	Category        string          `json:"category" gorm:"size:100;not null;index"`
	SubCategory     string          `json:"subCategory" gorm:"size:100"`
	Sizes           []string        `json:"sizes" gorm:"serializer:json"`
	Bestseller      bool            `json:"bestseller" gorm:"default:false"`
	Condition       Condition       `json:"condition" gorm:"type:varchar(10);default:'new'"`
	Images          []string        `json:"images" gorm:"serializer:json"`
	SellerID        uuid.UUID       `json:"sellerId" gorm:"type:char(36);not null;index"`
	ApprovalStatus  ApprovalStatus  `json:"approvalStatus" gorm:"type:varchar(20);not null;default:'pending';index"`
	ApprovedByID    *uuid.UUID      `json:"approvedBy,omitempty" gorm:"type:char(36)"`
	ApprovalDate    *time.Time      `json:"approvalDate,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty" gorm:"size:500"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
