package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "souq/internal/errors"
	"souq/internal/service"
	"souq/internal/upload"
)

// sellerDocumentFields are the three identity documents captured at
// registration, one file each.
var sellerDocumentFields = []string{"governmentId", "passport", "selfie"}

// SellerHandler handles seller onboarding and admin vetting endpoints.
type SellerHandler struct {
	sellerService service.SellerService
	saver         *upload.Saver
}

// NewSellerHandler creates a new seller handler.
func NewSellerHandler(sellerService service.SellerService, saver *upload.Saver) *SellerHandler {
	return &SellerHandler{sellerService: sellerService, saver: saver}
}

// Register godoc
// @Summary Register a seller account
// @Description Multipart form: profile fields plus governmentId, passport, and selfie files. The account starts unverified pending admin review.
// @Tags seller
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} apperrors.Envelope
// @Failure 400 {object} apperrors.Envelope
// @Router /seller/register [post]
func (h *SellerHandler) Register(c echo.Context) error {
	in := service.RegisterSellerInput{
		FullName:          c.FormValue("fullName"),
		Email:             c.FormValue("email"),
		Phone:             c.FormValue("phone"),
		Username:          c.FormValue("username"),
		Password:          c.FormValue("password"),
		Country:           c.FormValue("country"),
		State:             c.FormValue("state"),
		StreetAddress:     c.FormValue("streetAddress"),
		ZipCode:           c.FormValue("zipCode"),
		BusinessRegNumber: c.FormValue("businessRegNumber"),
		BankDetails:       c.FormValue("bankDetails"),
	}

	if in.FullName == "" || in.Email == "" || in.Username == "" || in.Password == "" ||
		in.Phone == "" || in.Country == "" || in.State == "" || in.StreetAddress == "" ||
		in.BusinessRegNumber == "" || in.BankDetails == "" {
		return c.JSON(http.StatusBadRequest, apperrors.Fail("Missing required fields"))
	}

	age, err := strconv.Atoi(c.FormValue("age"))
	if err != nil || age < 18 {
		return c.JSON(http.StatusBadRequest, apperrors.Fail("Sellers must be at least 18 years old"))
	}
	in.Age = age

	docs := make(map[string]string, len(sellerDocumentFields))
	for _, field := range sellerDocumentFields {
		fh, err := c.FormFile(field)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apperrors.Fail("Missing required document: "+field))
		}
		path, err := h.saver.Save(field, fh)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, apperrors.Fail("Failed to store uploaded document"))
		}
		docs[field] = path
	}
	in.GovernmentID = docs["governmentId"]
	in.Passport = docs["passport"]
	in.Selfie = docs["selfie"]

	token, user, err := h.sellerService.Register(c.Request().Context(), in)
	if err != nil {
		return failFromError(c, err, "Registration failed")
	}

	return c.JSON(http.StatusCreated, apperrors.OK("Registration successful! Please wait for admin verification.", apperrors.Envelope{
		"token": token,
		"user":  user,
	}))
}

// List godoc
// @Summary List all sellers for admin vetting
// @Tags seller
// @Produce json
// @Param token header string true "Session token"
// @Success 200 {object} apperrors.Envelope
// @Failure 403 {object} apperrors.Envelope
// @Router /seller/admin/list [get]
func (h *SellerHandler) List(c echo.Context) error {
	sellers, err := h.sellerService.List(c.Request().Context())
	if err != nil {
		return failFromError(c, err, "Failed to fetch sellers")
	}
	return c.JSON(http.StatusOK, apperrors.OK("", apperrors.Envelope{"sellers": sellers}))
}

// VerifyRequest flips a seller's verification flag.
type VerifyRequest struct {
	IsVerified bool `json:"isVerified"`
}

// SetVerified godoc
// @Summary Set a seller's verification flag after document review
// @Tags seller
// @Accept json
// @Produce json
// @Param token header string true "Session token"
// @Param sellerId path string true "Seller ID"
// @Param request body VerifyRequest true "Verification flag"
// @Success 200 {object} apperrors.Envelope
// @Failure 404 {object} apperrors.Envelope
// @Router /seller/admin/{sellerId}/verify [put]
func (h *SellerHandler) SetVerified(c echo.Context) error {
	sellerID, err := uuid.Parse(c.Param("sellerId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Fail("Invalid seller ID format"))
	}

	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Fail("Invalid request body"))
	}

	seller, err := h.sellerService.SetVerified(c.Request().Context(), sellerID, req.IsVerified)
	if err != nil {
		return failFromError(c, err, "Failed to update seller")
	}
	return c.JSON(http.StatusOK, apperrors.OK("Seller updated successfully", apperrors.Envelope{"seller": seller}))
}
