package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrProductNotFound is returned when a product lookup misses.
	ErrProductNotFound = errors.New("Product not found")
	// ErrSellerNotFound is returned when a seller lookup misses.
	ErrSellerNotFound = errors.New("Seller not found")
	// ErrBuyerNotFound is returned when a buyer lookup misses.
	ErrBuyerNotFound = errors.New("User not found")
	// ErrNotOwner is returned when a seller touches a product they do not own.
	ErrNotOwner = errors.New("Product not found or you do not have permission to modify it")
	// ErrInvalidStatus is returned for an unknown approval status value.
	ErrInvalidStatus = errors.New("Invalid status")
	// ErrNotPending is returned when an admin reviews a product that is not pending.
	ErrNotPending = errors.New("Only pending products can be reviewed")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrInvalidRole is returned when login names an unknown role.
	ErrInvalidRole = errors.New("Invalid role specified")
	// ErrEmailNotFound is returned when a password reset names an unknown email.
	ErrEmailNotFound = errors.New("Email not registered")
	// ErrEmailTaken is returned when the registration email already exists.
	ErrEmailTaken = errors.New("Email already registered")
	// ErrUsernameTaken is returned when the registration username already exists.
	ErrUsernameTaken = errors.New("Username already taken")
	// ErrAdminExists is returned when first-admin registration runs on a non-empty admin table.
	ErrAdminExists = errors.New("Admin registration is closed")
	// ErrOTPNotFound is returned when no OTP is stored for the destination.
	ErrOTPNotFound = errors.New("Invalid OTP request")
	// ErrOTPExpired is returned when the stored OTP is past its validity window.
	ErrOTPExpired = errors.New("OTP expired")
	// ErrOTPMismatch is returned when the submitted code does not match.
	ErrOTPMismatch = errors.New("Invalid OTP")
)

// StatusFor maps a domain error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotOwner):
		return http.StatusNotFound
	case errors.Is(err, ErrSellerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBuyerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAdminExists):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrNotPending),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrEmailNotFound),
		errors.Is(err, ErrOTPNotFound),
		errors.Is(err, ErrOTPExpired),
		errors.Is(err, ErrOTPMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
