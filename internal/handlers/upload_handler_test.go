package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sikhmentors/directory-api/internal/middleware"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
)

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func newUploadRouter(svc *MockUploadService, limit int64) *gin.Engine {
	router := gin.New()
	router.POST("/api/upload", middleware.BodySizeLimitMiddleware(limit), NewUploadHandler(svc).Upload)
	return router
}

func TestUploadHandler_Upload(t *testing.T) {
	content := []byte("\x89PNG\r\n\x1a\nrest")
	svc := new(MockUploadService)
	svc.On("Upload", mock.Anything, "photo.png", content).
		Return("https://cdn.example.com/mentors/abc.png", nil)

	w := httptest.NewRecorder()
	newUploadRouter(svc, 1<<20).ServeHTTP(w, multipartRequest(t, UploadFormField, "photo.png", content))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"imageUrl":"https://cdn.example.com/mentors/abc.png"}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestUploadHandler_MissingField(t *testing.T) {
	svc := new(MockUploadService)

	w := httptest.NewRecorder()
	newUploadRouter(svc, 1<<20).ServeHTTP(w, multipartRequest(t, "file", "photo.png", []byte("x")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No image file provided"}`, w.Body.String())
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadHandler_BodyOverLimit(t *testing.T) {
	svc := new(MockUploadService)

	w := httptest.NewRecorder()
	newUploadRouter(svc, 256).ServeHTTP(w, multipartRequest(t, UploadFormField, "photo.png", bytes.Repeat([]byte("a"), 4096)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"File too large"}`, w.Body.String())
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid type", apperrors.ErrInvalidFileType, http.StatusBadRequest},
		{"too large", apperrors.ErrPayloadTooLarge, http.StatusBadRequest},
		{"host failure", fmt.Errorf("%w: bucket not found", apperrors.ErrUploadFailed), http.StatusBadGateway},
		{"host timeout", apperrors.ErrUploadTimeout, http.StatusGatewayTimeout},
		{"no host", apperrors.ErrNotConfigured, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUploadService)
			svc.On("Upload", mock.Anything, "photo.exe", mock.Anything).Return("", tt.err)

			w := httptest.NewRecorder()
			newUploadRouter(svc, 1<<20).ServeHTTP(w, multipartRequest(t, UploadFormField, "photo.exe", []byte("MZ")))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestUploadHandler_FailureCarriesDetail(t *testing.T) {
	svc := new(MockUploadService)
	svc.On("Upload", mock.Anything, "photo.png", mock.Anything).
		Return("", fmt.Errorf("%w: bucket not found", apperrors.ErrUploadFailed))

	w := httptest.NewRecorder()
	newUploadRouter(svc, 1<<20).ServeHTTP(w, multipartRequest(t, UploadFormField, "photo.png", []byte("x")))

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"Image upload failed","details":"upload failed: bucket not found"}`, w.Body.String())
}
