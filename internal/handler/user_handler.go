package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"souq/internal/auth"
	apperrors "souq/internal/errors"
	"souq/internal/service"
)

// UserHandler handles buyer account endpoints.
type UserHandler struct {
	authService service.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// BuyerRegisterRequest represents a buyer registration request.
type BuyerRegisterRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// BuyerLoginRequest represents a buyer login request.
type BuyerLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Register a buyer account
// @Tags user
// @Accept json
// @Produce json
// @Param request body BuyerRegisterRequest true "Registration data"
// @Success 201 {object} apperrors.Envelope
// @Failure 400 {object} apperrors.Envelope
// @Router /user/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req BuyerRegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.RegisterBuyer(c.Request().Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		return failFromError(c, err, "Registration failed")
	}
	return c.JSON(http.StatusCreated, apperrors.OK("Registration successful", apperrors.Envelope{
		"token": token,
		"user":  user,
	}))
}

// Login godoc
// @Summary Login as a buyer
// @Tags user
// @Accept json
// @Produce json
// @Param request body BuyerLoginRequest true "Login credentials"
// @Success 200 {object} apperrors.Envelope
// @Failure 401 {object} apperrors.Envelope
// @Router /user/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req BuyerLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, auth.RoleBuyer)
	if err != nil {
		return failFromError(c, err, "Login failed")
	}
	return c.JSON(http.StatusOK, apperrors.OK("Login successful", apperrors.Envelope{
		"token": token,
		"user":  user,
	}))
}

// DeleteBuyerRequest names the buyer account an admin removes.
type DeleteBuyerRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// List godoc
// @Summary List all buyer accounts
// @Tags user
// @Produce json
// @Param token header string true "Session token"
// @Success 200 {object} apperrors.Envelope
// @Failure 403 {object} apperrors.Envelope
// @Router /user/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.authService.ListBuyers(c.Request().Context())
	if err != nil {
		return failFromError(c, err, "Failed to fetch users")
	}
	return c.JSON(http.StatusOK, apperrors.OK("", apperrors.Envelope{"users": users}))
}

// Add godoc
// @Summary Add a buyer account on behalf of an admin
// @Tags user
// @Accept json
// @Produce json
// @Param token header string true "Session token"
// @Param request body BuyerRegisterRequest true "Account data"
// @Success 201 {object} apperrors.Envelope
// @Failure 400 {object} apperrors.Envelope
// @Router /user/add [post]
func (h *UserHandler) Add(c echo.Context) error {
	var req BuyerRegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.CreateBuyer(c.Request().Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		return failFromError(c, err, "Failed to add user")
	}
	return c.JSON(http.StatusCreated, apperrors.OK("User added successfully", apperrors.Envelope{"user": user}))
}

// Delete godoc
// @Summary Delete a buyer account
// @Tags user
// @Accept json
// @Produce json
// @Param token header string true "Session token"
// @Param request body DeleteBuyerRequest true "Account ID"
// @Success 200 {object} apperrors.Envelope
// @Failure 404 {object} apperrors.Envelope
// @Router /user/delete [post]
func (h *UserHandler) Delete(c echo.Context) error {
	var req DeleteBuyerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Fail("Invalid user ID format"))
	}

	if err := h.authService.DeleteBuyer(c.Request().Context(), id); err != nil {
		return failFromError(c, err, "Failed to delete user")
	}
	return c.JSON(http.StatusOK, apperrors.OK("User deleted successfully", nil))
}
