package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"souq/internal/auth"
	"souq/internal/cache"
	"souq/internal/config"
	"souq/internal/db"
	"souq/internal/handler"
	"souq/internal/model"
	"souq/internal/notify"
	"souq/internal/otp"
	"souq/internal/repository"
	"souq/internal/router"
	"souq/internal/service"
	"souq/internal/upload"
)

// @title Souq Marketplace API
// @version 1.0
// @description Multi-role marketplace API: buyers browse approved products, sellers list products pending review, admins moderate listings and accounts.
// @host localhost:4000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey TokenAuth
// @in header
// @name token
func main() {
	// Load .env for local development; environment wins when both exist
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Buyer{},
		&model.Seller{},
		&model.Admin{},
		&model.Product{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// OTP storage: Redis with TTL eviction when configured, otherwise a
	// process-local store (codes are lost on restart).
	var otpStore otp.Store
	if cfg.RedisAddr != "" {
		otpStore = otp.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	} else {
		log.Println("REDIS_ADDR not set, using in-memory OTP store")
		otpStore = otp.NewMemoryStore()
	}

	saver, err := upload.NewSaver(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir init: %v", err)
	}

	// Initialize repositories
	buyerRepo := repository.NewBuyerRepository(gormDB)
	sellerRepo := repository.NewSellerRepository(gormDB)
	adminRepo := repository.NewAdminRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	// Initialize auth and delivery components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
	smsSender := notify.NewSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)

	// Initialize services
	otpService := service.NewOTPService(otpStore, mailer, smsSender, cfg.IsDevelopment())
	authService := service.NewAuthService(sellerRepo, buyerRepo, adminRepo, jwtService, otpService)
	sellerService := service.NewSellerService(sellerRepo, jwtService)
	productService := service.NewProductService(productRepo, sellerRepo, adminRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, otpService)
	userHandler := handler.NewUserHandler(authService)
	sellerHandler := handler.NewSellerHandler(sellerService, saver)
	productHandler := handler.NewProductHandler(productService, saver)

	e := echo.New()

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		userHandler,
		sellerHandler,
		productHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
