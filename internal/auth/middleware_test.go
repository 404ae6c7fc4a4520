package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGatedEcho(t *testing.T, jwtService *JWTService) *echo.Echo {
	t.Helper()
	e := echo.New()
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/admin-only", ok, Authenticated(jwtService), RequireAdmin)
	e.GET("/seller-only", ok, Authenticated(jwtService), RequireSeller)
	return e
}

func TestRoleGates(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	e := newGatedEcho(t, jwtService)

	adminToken, err := jwtService.GenerateToken(uuid.New(), RoleAdmin, false)
	require.NoError(t, err)
	sellerToken, err := jwtService.GenerateToken(uuid.New(), RoleSeller, false)
	require.NoError(t, err)

	tests := []struct {
		name         string
		path         string
		token        string
		expectedCode int
	}{
		{
			name:         "missing token is unauthenticated",
			path:         "/admin-only",
			token:        "",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "garbage token is unauthenticated",
			path:         "/admin-only",
			token:        "not-a-jwt",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "seller hitting an admin route is forbidden",
			path:         "/admin-only",
			token:        sellerToken,
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "admin hitting a seller route is forbidden",
			path:         "/seller-only",
			token:        adminToken,
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "admin passes the admin gate",
			path:         "/admin-only",
			token:        adminToken,
			expectedCode: http.StatusOK,
		},
		{
			name:         "seller passes the seller gate",
			path:         "/seller-only",
			token:        sellerToken,
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set(TokenHeader, tt.token)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	otherService := NewJWTService("other-secret")
	e := newGatedEcho(t, jwtService)

	token, err := otherService.GenerateToken(uuid.New(), RoleAdmin, false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set(TokenHeader, token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
