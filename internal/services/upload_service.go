package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sikhmentors/directory-api/internal/models"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
	"github.com/sikhmentors/directory-api/pkg/logger"
	"github.com/sikhmentors/directory-api/pkg/metrics"
	"github.com/sikhmentors/directory-api/pkg/storage"
	"go.uber.org/zap"
)

// UploadService validates photos and forwards them to the asset host
type UploadService struct {
	host     storage.AssetHost
	maxBytes int64
	timeout  time.Duration
	newKey   func(ext string) string
}

// NewUploadService creates an upload service. A nil host makes every valid
// upload fail with ErrNotConfigured.
func NewUploadService(host storage.AssetHost, maxBytes int64, timeout time.Duration) *UploadService {
	return &UploadService{
		host:     host,
		maxBytes: maxBytes,
		timeout:  timeout,
		newKey: func(ext string) string {
			return fmt.Sprintf("mentors/%s.%s", uuid.NewString(), ext)
		},
	}
}

// Upload stores the image and returns its public URL
func (s *UploadService) Upload(ctx context.Context, file *models.FileUpload) (string, error) {
	ext, ok := storage.ImageExtension(file.Filename)
	if !ok {
		metrics.ImageUploads.WithLabelValues("invalid_type").Inc()
		return "", fmt.Errorf("%q: only jpg, jpeg, png and gif images are accepted: %w", file.Filename, apperrors.ErrInvalidFileType)
	}
	if file.Size > s.maxBytes {
		metrics.ImageUploads.WithLabelValues("too_large").Inc()
		return "", fmt.Errorf("image is %d bytes, limit is %d: %w", file.Size, s.maxBytes, apperrors.ErrPayloadTooLarge)
	}

	// declared sizes can lie; never hold more than the limit
	data, err := io.ReadAll(io.LimitReader(file.Body, s.maxBytes+1))
	if err != nil {
		metrics.ImageUploads.WithLabelValues("error").Inc()
		return "", apperrors.InternalError(fmt.Sprintf("failed to read upload: %v", err))
	}
	if int64(len(data)) > s.maxBytes {
		metrics.ImageUploads.WithLabelValues("too_large").Inc()
		return "", fmt.Errorf("image exceeds %d bytes: %w", s.maxBytes, apperrors.ErrPayloadTooLarge)
	}

	head := data
	if len(head) > storage.SniffLen {
		head = head[:storage.SniffLen]
	}
	contentType, ok := storage.DetectImageType(head)
	if !ok {
		metrics.ImageUploads.WithLabelValues("invalid_type").Inc()
		return "", fmt.Errorf("content is %s, not an image: %w", contentType, apperrors.ErrInvalidFileType)
	}

	if s.host == nil {
		metrics.ImageUploads.WithLabelValues("not_configured").Inc()
		return "", fmt.Errorf("asset host: %w", apperrors.ErrNotConfigured)
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := s.newKey(ext)
	url, err := s.host.Upload(uploadCtx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(uploadCtx.Err(), context.DeadlineExceeded) {
			metrics.ImageUploads.WithLabelValues("timeout").Inc()
			logger.Warn("Asset host timed out", zap.String("provider", s.host.Name()), zap.String("key", key))
			return "", fmt.Errorf("%s did not answer within %s: %w", s.host.Name(), s.timeout, apperrors.ErrUploadTimeout)
		}
		metrics.ImageUploads.WithLabelValues("error").Inc()
		logger.Error("Asset host upload failed", zap.String("provider", s.host.Name()), zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}

	metrics.ImageUploads.WithLabelValues("success").Inc()
	logger.Info("Mentor photo uploaded",
		zap.String("provider", s.host.Name()),
		zap.String("key", key),
		zap.Int("size_bytes", len(data)))
	return url, nil
}
