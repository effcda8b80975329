package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sikhmentors/directory-api/internal/models"
	"github.com/sikhmentors/directory-api/internal/repository"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
	"github.com/sikhmentors/directory-api/pkg/jwt"
	"github.com/sikhmentors/directory-api/pkg/logger"
	"github.com/sikhmentors/directory-api/pkg/metrics"
	"github.com/sikhmentors/directory-api/pkg/password"
	"go.uber.org/zap"
)

// AuthService checks admin credentials and issues session tokens
type AuthService struct {
	admins       repository.AdminStore
	hasher       password.Hasher
	tokenManager *jwt.TokenManager
	// compared against when the email is unknown so both failure paths cost one hash
	dummyHash string
}

// NewAuthService creates an auth service. It hashes a throwaway password once
// up front, so construction takes as long as one login.
func NewAuthService(admins repository.AdminStore, hasher password.Hasher, tokenManager *jwt.TokenManager) (*AuthService, error) {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return &AuthService{
		admins:       admins,
		hasher:       hasher,
		tokenManager: tokenManager,
		dummyHash:    dummy,
	}, nil
}

// Login returns a session token for a matching email and password. Every
// credential failure returns ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*models.TokenResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || pass == "" {
		metrics.AdminLogins.WithLabelValues("rejected").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			metrics.AdminLogins.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("failed to look up admin: %w", err)
		}
		_ = s.hasher.Compare(s.dummyHash, pass) //nolint:errcheck // timing only
		metrics.AdminLogins.WithLabelValues("rejected").Inc()
		logger.Info("Admin login rejected", zap.String("reason", "unknown_email"))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(admin.PasswordHash, pass); err != nil {
		metrics.AdminLogins.WithLabelValues("rejected").Inc()
		if errors.Is(err, password.ErrUnsupportedHash) {
			logger.Warn("Stored admin password hash does not match the configured scheme",
				zap.Int64("admin_id", admin.ID),
				zap.String("scheme", s.hasher.Scheme()))
		} else {
			logger.Info("Admin login rejected", zap.String("reason", "password_mismatch"), zap.Int64("admin_id", admin.ID))
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	resp, err := s.issue(admin.ID, admin.Email)
	if err != nil {
		metrics.AdminLogins.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.AdminLogins.WithLabelValues("success").Inc()
	logger.Info("Admin logged in", zap.Int64("admin_id", admin.ID))
	return resp, nil
}

// Refresh mints a new token for an already verified session
func (s *AuthService) Refresh(session *models.AdminSession) (*models.TokenResponse, error) {
	if session == nil || session.AdminID == 0 {
		return nil, apperrors.ErrInvalidToken
	}
	return s.issue(session.AdminID, session.Email)
}

func (s *AuthService) issue(adminID int64, email string) (*models.TokenResponse, error) {
	token, expiresAt, err := s.tokenManager.GenerateToken(adminID, email)
	if err != nil {
		return nil, apperrors.InternalError(fmt.Sprintf("failed to sign session token: %v", err))
	}
	return &models.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}
