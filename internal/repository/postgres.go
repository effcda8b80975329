package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
	"github.com/sikhmentors/directory-api/pkg/logger"
	"github.com/sikhmentors/directory-api/pkg/metrics"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

// observe records metrics and a call log line for one database operation
func observe(operation string, start time.Time, err error, fields ...zap.Field) {
	duration := metrics.MeasureDuration(start)
	status := "success"
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		status = "error"
		fields = append(fields, zap.Error(err))
	}
	metrics.DBOperationDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBOperationTotal.WithLabelValues(operation, status).Inc()
	logger.LogAPICall("postgres", operation, status, duration, fields...)
}

// mapWriteError turns driver errors into application error kinds
func mapWriteError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFoundError(what)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperrors.ConflictError(fmt.Sprintf("%s with this email already exists", what))
	}
	return fmt.Errorf("%s write failed: %w", what, err)
}
