package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
)

// exposeInternalErrors controls whether unexpected error text reaches clients.
// Only enabled outside production.
var exposeInternalErrors bool

// SetExposeInternalErrors toggles internal error details in response bodies
func SetExposeInternalErrors(expose bool) {
	exposeInternalErrors = expose
}

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// respondServiceError maps an application error to its status and body
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		if fields := apperrors.FieldsOf(err); len(fields) > 0 {
			respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", fields, err)
			return
		}
		respondError(c, http.StatusBadRequest, "Validation failed", err)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid email or password", err)
	case errors.Is(err, apperrors.ErrMissingToken):
		respondError(c, http.StatusUnauthorized, "Authorization token required", err)
	case errors.Is(err, apperrors.ErrInvalidToken):
		respondError(c, http.StatusForbidden, "Invalid or expired token", err)
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, "Mentor not found", err)
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, "A mentor with this email already exists", err)
	case errors.Is(err, apperrors.ErrInvalidFileType):
		respondError(c, http.StatusBadRequest, "Invalid file type. Only JPG, JPEG, PNG and GIF images are allowed", err)
	case errors.Is(err, apperrors.ErrPayloadTooLarge):
		respondError(c, http.StatusBadRequest, "File too large", err)
	case errors.Is(err, apperrors.ErrUploadTimeout):
		respondError(c, http.StatusGatewayTimeout, "Image upload timed out", err)
	case errors.Is(err, apperrors.ErrUploadFailed):
		respondErrorWithDetails(c, http.StatusBadGateway, "Image upload failed", err.Error(), err)
	case errors.Is(err, apperrors.ErrDispatchTimeout):
		respondError(c, http.StatusGatewayTimeout, "Message delivery timed out", err)
	case errors.Is(err, apperrors.ErrDispatchFailed):
		respondError(c, http.StatusInternalServerError, "Failed to send message", err)
	case errors.Is(err, apperrors.ErrNotConfigured):
		respondError(c, http.StatusServiceUnavailable, "Service not configured", err)
	default:
		if exposeInternalErrors {
			respondErrorWithDetails(c, http.StatusInternalServerError, "Internal server error", err.Error(), err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// respondBindError handles failures from ShouldBindJSON and multipart parsing
func respondBindError(c *gin.Context, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		respondError(c, http.StatusBadRequest, "Request body too large", err)
		return
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(validationErrs), err)
		return
	}

	respondError(c, http.StatusBadRequest, "Invalid request body", err)
}
