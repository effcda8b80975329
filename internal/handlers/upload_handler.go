package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sikhmentors/directory-api/internal/models"
	"github.com/sikhmentors/directory-api/internal/services"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
	"github.com/sikhmentors/directory-api/pkg/logger"
	"go.uber.org/zap"
)

// UploadFormField is the multipart field carrying the image
const UploadFormField = "image"

// UploadHandler accepts mentor photos
type UploadHandler struct {
	service services.UploadServiceInterface
}

func NewUploadHandler(service services.UploadServiceInterface) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload handles POST /api/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile(UploadFormField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondServiceError(c, apperrors.ErrPayloadTooLarge)
			return
		}
		respondError(c, http.StatusBadRequest, "No image file provided", err)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Unable to read uploaded file", err)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logger.Warn("Failed to close uploaded file", zap.Error(closeErr))
		}
	}()

	url, err := h.service.Upload(c.Request.Context(), &models.FileUpload{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UploadResponse{ImageURL: url})
}
