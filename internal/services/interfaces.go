package services

import (
	"context"

	"github.com/sikhmentors/directory-api/internal/models"
)

// AuthServiceInterface verifies admin credentials and mints session tokens
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Refresh(session *models.AdminSession) (*models.TokenResponse, error)
}

// MentorServiceInterface defines the mentor directory operations
type MentorServiceInterface interface {
	List(ctx context.Context, filter models.MentorFilter) ([]*models.Mentor, error)
	Create(ctx context.Context, in *models.MentorInput) (int64, error)
	Update(ctx context.Context, id int64, in *models.MentorInput) error
	Delete(ctx context.Context, id int64) error
}

// UploadServiceInterface stores mentor photos
type UploadServiceInterface interface {
	Upload(ctx context.Context, file *models.FileUpload) (string, error)
}

// ContactServiceInterface relays visitor messages to mentors
type ContactServiceInterface interface {
	Send(ctx context.Context, mentorID int64, msg *models.ContactMessage) error
}

// Ensure services implement their interfaces
var _ AuthServiceInterface = (*AuthService)(nil)
var _ MentorServiceInterface = (*MentorService)(nil)
var _ UploadServiceInterface = (*UploadService)(nil)
var _ ContactServiceInterface = (*ContactService)(nil)
