package services

import (
	"context"

	"github.com/sikhmentors/directory-api/internal/models"
	"github.com/sikhmentors/directory-api/internal/repository"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
	"github.com/sikhmentors/directory-api/pkg/logger"
	"github.com/sikhmentors/directory-api/pkg/metrics"
	"go.uber.org/zap"
)

type MentorService struct {
	repo repository.MentorStore
}

func NewMentorService(repo repository.MentorStore) *MentorService {
	return &MentorService{repo: repo}
}

func (s *MentorService) List(ctx context.Context, filter models.MentorFilter) ([]*models.Mentor, error) {
	return s.repo.List(ctx, filter)
}

func (s *MentorService) Create(ctx context.Context, in *models.MentorInput) (int64, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		metrics.MentorWrites.WithLabelValues("create", "invalid").Inc()
		return 0, err
	}

	id, err := s.repo.Create(ctx, in)
	if err != nil {
		metrics.MentorWrites.WithLabelValues("create", writeStatus(err)).Inc()
		return 0, err
	}

	metrics.MentorWrites.WithLabelValues("create", "success").Inc()
	logger.Info("Mentor created", zap.Int64("mentor_id", id))
	return id, nil
}

func (s *MentorService) Update(ctx context.Context, id int64, in *models.MentorInput) error {
	in.Normalize()
	if err := in.Validate(); err != nil {
		metrics.MentorWrites.WithLabelValues("update", "invalid").Inc()
		return err
	}

	if err := s.repo.Update(ctx, id, in); err != nil {
		metrics.MentorWrites.WithLabelValues("update", writeStatus(err)).Inc()
		return err
	}

	metrics.MentorWrites.WithLabelValues("update", "success").Inc()
	logger.Info("Mentor updated", zap.Int64("mentor_id", id))
	return nil
}

func (s *MentorService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		metrics.MentorWrites.WithLabelValues("delete", writeStatus(err)).Inc()
		return err
	}

	metrics.MentorWrites.WithLabelValues("delete", "success").Inc()
	logger.Info("Mentor deleted", zap.Int64("mentor_id", id))
	return nil
}

func writeStatus(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case apperrors.Is(err, apperrors.ErrConflict):
		return "conflict"
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
