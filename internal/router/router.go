package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"souq/internal/auth"
	"souq/internal/config"
	"souq/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	sellerHandler *handler.SellerHandler,
	productHandler *handler.ProductHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API Working")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	authenticated := auth.Authenticated(jwtService)

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/send-otp/email", authHandler.SendEmailOTP)
	authGroup.POST("/send-otp/phone", authHandler.SendPhoneOTP)
	authGroup.POST("/verify/email", authHandler.VerifyEmailOTP)
	authGroup.POST("/verify/phone", authHandler.VerifyPhoneOTP)
	authGroup.POST("/forgot-password", authHandler.ForgotPassword)
	authGroup.POST("/reset-password", authHandler.ResetPassword)
	authGroup.POST("/admin/login", authHandler.AdminLogin)
	authGroup.POST("/admin/first-register", authHandler.RegisterFirstAdmin)
	authGroup.POST("/admin/register", authHandler.RegisterAdmin, authenticated, auth.RequireAdmin)

	// Buyer routes, plus the admin user panel
	userGroup := api.Group("/user")
	userGroup.POST("/register", userHandler.Register)
	userGroup.POST("/login", userHandler.Login)
	userGroup.GET("/users", userHandler.List, authenticated, auth.RequireAdmin)
	userGroup.POST("/add", userHandler.Add, authenticated, auth.RequireAdmin)
	userGroup.POST("/delete", userHandler.Delete, authenticated, auth.RequireAdmin)

	// Seller onboarding and admin vetting
	sellerGroup := api.Group("/seller")
	sellerGroup.POST("/register", sellerHandler.Register)
	sellerGroup.GET("/admin/list", sellerHandler.List, authenticated, auth.RequireAdmin)
	sellerGroup.PUT("/admin/:sellerId/verify", sellerHandler.SetVerified, authenticated, auth.RequireAdmin)

	// Product catalog and moderation
	productGroup := api.Group("/product")
	productGroup.GET("/list", productHandler.PublicList)
	productGroup.GET("/approved", productHandler.PublicList)
	productGroup.GET("/product/:id", productHandler.GetByID)

	productGroup.POST("/seller/add", productHandler.Add, authenticated, auth.RequireSeller)
	productGroup.GET("/seller/products", productHandler.SellerProducts, authenticated, auth.RequireSeller)
	productGroup.PUT("/seller/update/:productId", productHandler.UpdateOwn, authenticated, auth.RequireSeller)
	productGroup.DELETE("/seller/delete/:productId", productHandler.DeleteOwn, authenticated, auth.RequireSeller)

	productGroup.GET("/admin/pending", productHandler.AdminPending, authenticated, auth.RequireAdmin)
	productGroup.GET("/admin/:status", productHandler.AdminList, authenticated, auth.RequireAdmin)
	productGroup.PUT("/admin/product/:productId/status", productHandler.UpdateStatus, authenticated, auth.RequireAdmin)
	productGroup.DELETE("/admin/product/:productId", productHandler.AdminDelete, authenticated, auth.RequireAdmin)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
