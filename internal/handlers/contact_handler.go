package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sikhmentors/directory-api/internal/models"
	"github.com/sikhmentors/directory-api/internal/services"
)

type ContactHandler struct {
	service services.ContactServiceInterface
}

func NewContactHandler(service services.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// ContactMentor handles POST /api/mentors/:id/contact
func (h *ContactHandler) ContactMentor(c *gin.Context) {
	id, err := mentorIDParam(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req models.ContactMessage
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondBindError(c, bindErr)
		return
	}

	if err := h.service.Send(c.Request.Context(), id, &req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Message sent successfully"})
}
