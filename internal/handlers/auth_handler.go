package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sikhmentors/directory-api/internal/middleware"
	"github.com/sikhmentors/directory-api/internal/models"
	"github.com/sikhmentors/directory-api/internal/services"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	service services.AuthServiceInterface
}

func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh handles POST /api/admin/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	session, err := middleware.GetAdminSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	resp, err := h.service.Refresh(session)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Session handles GET /api/admin/session
func (h *AuthHandler) Session(c *gin.Context) {
	session, err := middleware.GetAdminSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{Session: session})
}
