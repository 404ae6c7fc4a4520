package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "souq/internal/errors"
	"souq/internal/otp"
	"souq/internal/service"
)

// AuthHandler handles login, OTP verification, admin registration, and
// password reset endpoints.
type AuthHandler struct {
	authService service.AuthService
	otpService  service.OTPService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, otpService service.OTPService) *AuthHandler {
	return &AuthHandler{authService: authService, otpService: otpService}
}

// LoginRequest represents a buyer or seller login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// AdminLoginRequest represents an admin login request.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminRegisterRequest represents an admin registration request.
type AdminRegisterRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// EmailOTPRequest carries the destination for an email OTP.
type EmailOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PhoneOTPRequest carries the destination for a phone OTP.
type PhoneOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// VerifyEmailOTPRequest carries an email verification attempt.
type VerifyEmailOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

// VerifyPhoneOTPRequest carries a phone verification attempt.
type VerifyPhoneOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

// ForgotPasswordRequest starts an OTP-gated password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes an OTP-gated password reset.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// Login godoc
// @Summary Login as buyer or seller
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} apperrors.Envelope
// @Failure 400 {object} apperrors.Envelope
// @Failure 401 {object} apperrors.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return failFromError(c, err, "Login failed")
	}

	return c.JSON(http.StatusOK, apperrors.OK("Login successful", apperrors.Envelope{
		"token": token,
		"user":  user,
	}))
}

// AdminLogin godoc
// @Summary Login as admin
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Login credentials"
// @Success 200 {object} apperrors.Envelope
// @Failure 401 {object} apperrors.Envelope
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req AdminLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return failFromError(c, err, "Login failed")
	}

	return c.JSON(http.StatusOK, apperrors.OK("Login successful", apperrors.Envelope{
		"token": token,
		"user":  user,
	}))
}

// RegisterFirstAdmin godoc
// @Summary Bootstrap the first admin account
// @Description Open only while no admin accounts exist.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AdminRegisterRequest true "Admin data"
// @Success 201 {object} apperrors.Envelope
// @Failure 403 {object} apperrors.Envelope
// @Router /auth/admin/first-register [post]
func (h *AuthHandler) RegisterFirstAdmin(c echo.Context) error {
	var req AdminRegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.RegisterFirstAdmin(c.Request().Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		return failFromError(c, err, "Registration failed")
	}

	return c.JSON(http.StatusCreated, apperrors.OK("Admin registered successfully", apperrors.Envelope{
		"token": token,
		"user":  user,
	}))
}

// RegisterAdmin godoc
// @Summary Register an additional admin account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AdminRegisterRequest true "Admin data"
// @Success 201 {object} apperrors.Envelope
// @Failure 403 {object} apperrors.Envelope
// @Router /auth/admin/register [post]
func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	var req AdminRegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.RegisterAdmin(c.Request().Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		return failFromError(c, err, "Registration failed")
	}

	return c.JSON(http.StatusCreated, apperrors.OK("Admin registered successfully", apperrors.Envelope{
		"user": user,
	}))
}

// SendEmailOTP godoc
// @Summary Send a verification code to an email address
// @Tags auth
// @Accept json
// @Produce json
// @Param request body EmailOTPRequest true "Destination"
// @Success 200 {object} apperrors.Envelope
// @Failure 500 {object} apperrors.Envelope
// @Router /auth/send-otp/email [post]
func (h *AuthHandler) SendEmailOTP(c echo.Context) error {
	var req EmailOTPRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.otpService.SendEmailOTP(c.Request().Context(), req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Fail("Failed to send OTP"))
	}
	return c.JSON(http.StatusOK, otpSendEnvelope(result, "OTP sent successfully to your email"))
}

// SendPhoneOTP godoc
// @Summary Send a verification code to a phone number
// @Tags auth
// @Accept json
// @Produce json
// @Param request body PhoneOTPRequest true "Destination"
// @Success 200 {object} apperrors.Envelope
// @Failure 500 {object} apperrors.Envelope
// @Router /auth/send-otp/phone [post]
func (h *AuthHandler) SendPhoneOTP(c echo.Context) error {
	var req PhoneOTPRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.otpService.SendPhoneOTP(c.Request().Context(), req.Phone)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Fail("Failed to generate OTP"))
	}
	return c.JSON(http.StatusOK, otpSendEnvelope(result, "OTP sent successfully"))
}

// VerifyEmailOTP godoc
// @Summary Verify an email address with a code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyEmailOTPRequest true "Verification attempt"
// @Success 200 {object} apperrors.Envelope
// @Failure 400 {object} apperrors.Envelope
// @Router /auth/verify/email [post]
func (h *AuthHandler) VerifyEmailOTP(c echo.Context) error {
	var req VerifyEmailOTPRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.otpService.Verify(c.Request().Context(), req.Email, req.OTP, otp.ChannelEmail); err != nil {
		return failFromError(c, err, "Verification failed")
	}
	return c.JSON(http.StatusOK, apperrors.OK("Email verified successfully", nil))
}

// VerifyPhoneOTP godoc
// @Summary Verify a phone number with a code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyPhoneOTPRequest true "Verification attempt"
// @Success 200 {object} apperrors.Envelope
// @Failure 400 {object} apperrors.Envelope
// @Router /auth/verify/phone [post]
func (h *AuthHandler) VerifyPhoneOTP(c echo.Context) error {
	var req VerifyPhoneOTPRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.otpService.Verify(c.Request().Context(), req.Phone, req.OTP, otp.ChannelPhone); err != nil {
		return failFromError(c, err, "Verification failed")
	}
	return c.JSON(http.StatusOK, apperrors.OK("Phone verified successfully", nil))
}

// ForgotPassword godoc
// @Summary Request an OTP-gated password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} apperrors.Envelope
// @Failure 400 {object} apperrors.Envelope
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email)
	if err != nil {
		return failFromError(c, err, "Failed to send OTP")
	}
	return c.JSON(http.StatusOK, otpSendEnvelope(result, "OTP sent successfully to your email"))
}

// ResetPassword godoc
// @Summary Complete an OTP-gated password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset data"
// @Success 200 {object} apperrors.Envelope
// @Failure 400 {object} apperrors.Envelope
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		return failFromError(c, err, "Password reset failed")
	}
	return c.JSON(http.StatusOK, apperrors.OK("Password reset successfully", nil))
}

// otpSendEnvelope builds the issue response; when delivery fell back
// the code itself is surfaced in the payload.
func otpSendEnvelope(result *service.OTPResult, sentMessage string) apperrors.Envelope {
	if result.Delivered {
		return apperrors.OK(sentMessage, nil)
	}
	return apperrors.OK("Development Mode: Check console for OTP", apperrors.Envelope{
		"otp": result.Code,
	})
}
