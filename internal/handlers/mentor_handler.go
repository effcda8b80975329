package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sikhmentors/directory-api/internal/models"
	"github.com/sikhmentors/directory-api/internal/services"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
)

// MentorHandler serves the public listing and the admin write routes
type MentorHandler struct {
	service services.MentorServiceInterface
}

func NewMentorHandler(service services.MentorServiceInterface) *MentorHandler {
	return &MentorHandler{service: service}
}

// ListMentors handles GET /api/mentors. Email addresses are never included.
func (h *MentorHandler) ListMentors(c *gin.Context) {
	mentors, ok := h.list(c)
	if !ok {
		return
	}

	public := make([]models.PublicMentor, 0, len(mentors))
	for _, m := range mentors {
		public = append(public, m.ToPublic())
	}

	c.JSON(http.StatusOK, public)
}

// ListMentorsAdmin handles GET /api/admin/mentors and returns full records
func (h *MentorHandler) ListMentorsAdmin(c *gin.Context) {
	mentors, ok := h.list(c)
	if !ok {
		return
	}

	if mentors == nil {
		mentors = []*models.Mentor{}
	}
	c.JSON(http.StatusOK, mentors)
}

func (h *MentorHandler) list(c *gin.Context) ([]*models.Mentor, bool) {
	filter, err := models.ParseMentorFilter(c.Request.URL.Query())
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}

	mentors, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return mentors, true
}

// CreateMentor handles POST /api/mentors
func (h *MentorHandler) CreateMentor(c *gin.Context) {
	var req models.MentorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.MessageResponse{Message: "Mentor created successfully", ID: &id})
}

// UpdateMentor handles PUT /api/mentors/:id
func (h *MentorHandler) UpdateMentor(c *gin.Context) {
	id, err := mentorIDParam(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req models.MentorInput
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondBindError(c, bindErr)
		return
	}

	if err := h.service.Update(c.Request.Context(), id, &req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Mentor updated successfully"})
}

// DeleteMentor handles DELETE /api/mentors/:id
func (h *MentorHandler) DeleteMentor(c *gin.Context) {
	id, err := mentorIDParam(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Mentor deleted successfully"})
}

// mentorIDParam parses the :id route parameter as a positive integer
func mentorIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInputError("id", "must be a positive integer")
	}
	return id, nil
}
