package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "souq/internal/errors"
)

// TokenHeader is the request header carrying the session token. The
// clients send a bare token here, not an Authorization bearer scheme.
const TokenHeader = "token"

// claimsKey is the echo context key holding validated *Claims.
const claimsKey = "claims"

// Authenticated decodes and validates the session token, attaching the
// claims to the request context for downstream role gates.
func Authenticated(jwtService *JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(TokenHeader)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, apperrors.Fail("Please login to access this resource"))
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apperrors.Fail("Invalid or expired token"))
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// RequireSeller rejects requests whose claims do not carry the seller role.
func RequireSeller(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := ClaimsFrom(c)
		if claims == nil || claims.Role != RoleSeller {
			return c.JSON(http.StatusForbidden, apperrors.Fail("Only sellers can access this resource"))
		}
		return next(c)
	}
}

// RequireAdmin rejects requests whose claims do not carry the admin role.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := ClaimsFrom(c)
		if claims == nil || claims.Role != RoleAdmin {
			return c.JSON(http.StatusForbidden, apperrors.Fail("Only admins can access this resource"))
		}
		return next(c)
	}
}

// ClaimsFrom returns the validated claims attached by Authenticated,
// or nil when the middleware did not run.
func ClaimsFrom(c echo.Context) *Claims {
	claims, _ := c.Get(claimsKey).(*Claims)
	return claims
}
