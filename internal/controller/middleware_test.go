package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/auth"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
)

func newTestTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", "sports-test", time.Hour)
}

func issueToken(t *testing.T, tokens *auth.TokenManager, userID int64, role model.Role) string {
	t.Helper()
	token, err := tokens.Issue(&model.User{ID: userID, Role: role})
	require.NoError(t, err)
	return token
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthenticate(t *testing.T) {
	tokens := newTestTokens()

	e := echo.New()
	e.GET("/protected", okHandler, Authenticate(tokens))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + issueToken(t, tokens, 7, model.RoleAdmin), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	expired := auth.NewTokenManager("test-secret", "sports-test", -time.Minute)

	e := echo.New()
	e.GET("/protected", okHandler, Authenticate(newTestTokens()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issueToken(t, expired, 7, model.RoleAdmin))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	tokens := newTestTokens()

	e := echo.New()
	e.GET("/staff", okHandler, Authenticate(tokens), RequireRole(model.RoleAdmin, model.RoleCoordinator))

	tests := []struct {
		name string
		role model.Role
		want int
	}{
		{"admin allowed", model.RoleAdmin, http.StatusOK},
		{"coordinator allowed", model.RoleCoordinator, http.StatusOK},
		{"athlete rejected", model.RoleAthlete, http.StatusForbidden},
		{"professional rejected", model.RoleProfessional, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/staff", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+issueToken(t, tokens, 1, tt.role))
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
