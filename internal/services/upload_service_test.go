package services_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sikhmentors/directory-api/internal/models"
	"github.com/sikhmentors/directory-api/internal/services"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func pngUpload(name string) *models.FileUpload {
	return &models.FileUpload{
		Filename:    name,
		Size:        int64(len(pngBytes)),
		ContentType: "image/png",
		Body:        bytes.NewReader(pngBytes),
	}
}

func TestUploadService_Upload_Success(t *testing.T) {
	host := new(MockAssetHost)
	svc := services.NewUploadService(host, 1024, time.Second)

	host.On("Upload", mock.Anything,
		mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "mentors/") && strings.HasSuffix(key, ".png") && len(key) == len("mentors/")+36+len(".png")
		}),
		mock.Anything, int64(len(pngBytes)), "image/png",
	).Return("https://cdn.example.org/mentors/x.png", nil)

	url, err := svc.Upload(context.Background(), pngUpload("Headshot.PNG"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.org/mentors/x.png", url)
	host.AssertExpectations(t)
}

func TestUploadService_Upload_RejectsExtensionWithoutCallingHost(t *testing.T) {
	host := new(MockAssetHost)
	svc := services.NewUploadService(host, 1024, time.Second)

	_, err := svc.Upload(context.Background(), pngUpload("photo.exe"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
	host.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_Upload_RejectsDisguisedContent(t *testing.T) {
	host := new(MockAssetHost)
	svc := services.NewUploadService(host, 1024, time.Second)

	body := []byte("MZ\x90\x00\x03\x00\x00\x00 definitely not an image")
	_, err := svc.Upload(context.Background(), &models.FileUpload{
		Filename: "photo.png",
		Size:     int64(len(body)),
		Body:     bytes.NewReader(body),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
	host.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_Upload_TooLarge(t *testing.T) {
	host := new(MockAssetHost)
	svc := services.NewUploadService(host, 16, time.Second)

	_, err := svc.Upload(context.Background(), pngUpload("photo.png"))
	assert.ErrorIs(t, err, apperrors.ErrPayloadTooLarge)

	// the declared size may understate the body
	up := pngUpload("photo.png")
	up.Size = 1
	_, err = svc.Upload(context.Background(), up)
	assert.ErrorIs(t, err, apperrors.ErrPayloadTooLarge)

	host.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_Upload_NotConfigured(t *testing.T) {
	svc := services.NewUploadService(nil, 1024, time.Second)

	_, err := svc.Upload(context.Background(), pngUpload("photo.png"))
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}

func TestUploadService_Upload_HostFailure(t *testing.T) {
	host := new(MockAssetHost)
	svc := services.NewUploadService(host, 1024, time.Second)

	host.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("AccessDenied"))

	_, err := svc.Upload(context.Background(), pngUpload("photo.png"))
	assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
	assert.Contains(t, err.Error(), "AccessDenied")
	assert.False(t, errors.Is(err, apperrors.ErrUploadTimeout))
}

func TestUploadService_Upload_Timeout(t *testing.T) {
	host := new(MockAssetHost)
	svc := services.NewUploadService(host, 1024, 20*time.Millisecond)

	host.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return("", context.DeadlineExceeded)

	_, err := svc.Upload(context.Background(), pngUpload("photo.png"))
	assert.ErrorIs(t, err, apperrors.ErrUploadTimeout)
}
