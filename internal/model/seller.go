package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seller represents a seller account. Sellers start unverified; the
// verification flag flips only through admin action after document review.
type Seller struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FullName     string    `json:"fullName" gorm:"size:255;not null"`
	Age          int       `json:"age" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone        string    `json:"phone" gorm:"size:32;not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Country      string    `json:"country" gorm:"size:100;not null"`
	State        string    `json:"state" gorm:"size:100;not null"`
	StreetAddress string   `json:"streetAddress" gorm:"size:255;not null"`
	ZipCode      string    `json:"zipCode" gorm:"size:20"`

	// Identity documents captured at registration, stored as upload paths.
	GovernmentID string `json:"governmentId" gorm:"size:255;not null"`
	Passport     string `json:"passport" gorm:"size:255;not null"`
	Selfie       string `json:"selfie" gorm:"size:255;not null"`

	BusinessRegNumber string `json:"businessRegNumber" gorm:"size:100;not null"`
	BankDetails       string `json:"bankDetails" gorm:"size:255;not null"`

	IsVerified   bool      `json:"isVerified" gorm:"default:false"`
	IsActive     bool      `json:"isActive" gorm:"default:true"`
	RegisteredAt time.Time `json:"registeredAt" gorm:"autoCreateTime"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Seller) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
