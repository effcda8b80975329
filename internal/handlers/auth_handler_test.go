package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sikhmentors/directory-api/internal/middleware"
	"github.com/sikhmentors/directory-api/internal/models"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
)

func newAuthRouter(svc *MockAuthService, session *models.AdminSession) *gin.Engine {
	h := NewAuthHandler(svc)
	router := gin.New()
	router.POST("/api/admin/login", h.Login)

	withSession := func(c *gin.Context) {
		if session != nil {
			c.Set(middleware.AdminSessionContextKey, session)
		}
		c.Next()
	}
	router.POST("/api/admin/refresh", withSession, h.Refresh)
	router.GET("/api/admin/session", withSession, h.Session)
	return router
}

func TestAuthHandler_Login(t *testing.T) {
	expiresAt := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, "a@x.com", "secret").
		Return(&models.TokenResponse{Token: "tok", ExpiresAt: expiresAt}, nil)

	w := serve(newAuthRouter(svc, nil), http.MethodPost, "/api/admin/login", `{"email":"a@x.com","password":"secret"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"tok","expiresAt":"2026-01-02T00:00:00Z"}`, w.Body.String())
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrInvalidCredentials)

	w := serve(newAuthRouter(svc, nil), http.MethodPost, "/api/admin/login", `{"email":"a@x.com","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email or password"}`, w.Body.String())
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	svc := new(MockAuthService)

	w := serve(newAuthRouter(svc, nil), http.MethodPost, "/api/admin/login", `{"email":"a@x.com"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, []apperrors.FieldError{{Field: "password", Message: "This field is required"}}, body.Details)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_Refresh(t *testing.T) {
	session := &models.AdminSession{AdminID: 1, Email: "a@x.com"}
	svc := new(MockAuthService)
	svc.On("Refresh", session).Return(&models.TokenResponse{Token: "fresh"}, nil)

	w := serve(newAuthRouter(svc, session), http.MethodPost, "/api/admin/refresh", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"fresh"`)
}

func TestAuthHandler_RefreshWithoutSession(t *testing.T) {
	svc := new(MockAuthService)

	w := serve(newAuthRouter(svc, nil), http.MethodPost, "/api/admin/refresh", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Refresh", mock.Anything)
}

func TestAuthHandler_Session(t *testing.T) {
	session := &models.AdminSession{AdminID: 1, Email: "a@x.com", IssuedAt: 100, ExpiresAt: 200}

	w := httptest.NewRecorder()
	newAuthRouter(new(MockAuthService), session).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/session", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"session":{"admin_id":1,"email":"a@x.com","iat":100,"exp":200}}`, w.Body.String())
}
