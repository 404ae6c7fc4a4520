package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"souq/internal/config"
	"souq/internal/db"
	"souq/internal/model"
	"souq/internal/repository"
	"souq/internal/service"
)

// Seeds the bootstrap admin and, optionally, a demo seller with a few
// listings so the moderation views have something to show.
func main() {
	log.Println("Starting seed script...")

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.Buyer{},
		&model.Seller{},
		&model.Admin{},
		&model.Product{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	adminRepo := repository.NewAdminRepository(gormDB)
	sellerRepo := repository.NewSellerRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	seedAdmin(ctx, adminRepo)

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		seedDemo(ctx, sellerRepo, productRepo)
	}

	log.Println("Seed completed")
}

func seedAdmin(ctx context.Context, adminRepo repository.AdminRepository) {
	count, err := adminRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count admins: %v", err)
	}
	if count > 0 {
		log.Println("Admin account already exists, skipping")
		return
	}

	email := envOr("SEED_ADMIN_EMAIL", "admin@souq.local")
	password := envOr("SEED_ADMIN_PASSWORD", "admin123")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &model.Admin{
		FullName:     "Bootstrap Admin",
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := adminRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	log.Printf("Created bootstrap admin %s", email)
}

func seedDemo(ctx context.Context, sellerRepo repository.SellerRepository, productRepo repository.ProductRepository) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("seller123"), 10)
	seller := &model.Seller{
		FullName:          "Demo Seller",
		Age:               30,
		Email:             "seller@souq.local",
		Phone:             "03001234567",
		Username:          "demoseller",
		PasswordHash:      string(hash),
		Country:           "Pakistan",
		State:             "Punjab",
		StreetAddress:     "1 Demo Street",
		ZipCode:           "54000",
		GovernmentID:      "uploads/demo-government-id.png",
		Passport:          "uploads/demo-passport.png",
		Selfie:            "uploads/demo-selfie.png",
		BusinessRegNumber: "BRN-0001",
		BankDetails:       "Demo Bank 0000-0000",
		IsActive:          true,
	}
	if err := sellerRepo.Create(ctx, seller); err != nil {
		log.Printf("Demo seller not created (may already exist): %v", err)
		return
	}
	log.Printf("Created demo seller %s", seller.Email)

	demos := []service.CreateProductInput{
		{Name: "Cotton T-Shirt", Description: "Plain white cotton tee", Price: decimal.NewFromInt(15), Category: "Clothing", Condition: model.ConditionNew},
		{Name: "Leather Satchel", Description: "Hand-stitched brown satchel", Price: decimal.NewFromInt(80), Category: "Bags", Condition: model.ConditionUsed},
		{Name: "Canvas Sneakers", Description: "Low-top canvas sneakers", Price: decimal.NewFromInt(35), Category: "Footwear", Condition: model.ConditionNew},
	}
	for _, in := range demos {
		product := &model.Product{
			Name:           in.Name,
			Description:    in.Description,
			Price:          in.Price,
			Category:       in.Category,
			SubCategory:    in.Category,
			Sizes:          []string{"S", "M", "L"},
			Condition:      in.Condition,
			SellerID:       seller.ID,
			ApprovalStatus: model.ApprovalPending,
		}
		if err := productRepo.Create(ctx, product); err != nil {
			log.Printf("Demo product %q not created: %v", in.Name, err)
			continue
		}
		log.Printf("Created demo product %q (pending)", in.Name)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
