package handlers

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/sikhmentors/directory-api/internal/models"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Refresh(session *models.AdminSession) (*models.TokenResponse, error) {
	args := m.Called(session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenResponse), args.Error(1)
}

type MockMentorService struct {
	mock.Mock
}

func (m *MockMentorService) List(ctx context.Context, filter models.MentorFilter) ([]*models.Mentor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Mentor), args.Error(1)
}

func (m *MockMentorService) Create(ctx context.Context, in *models.MentorInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMentorService) Update(ctx context.Context, id int64, in *models.MentorInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockMentorService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, file *models.FileUpload) (string, error) {
	// Drain the body so tests can assert on what was received
	body, _ := io.ReadAll(file.Body)
	args := m.Called(ctx, file.Filename, body)
	return args.String(0), args.Error(1)
}

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Send(ctx context.Context, mentorID int64, msg *models.ContactMessage) error {
	args := m.Called(ctx, mentorID, msg)
	return args.Error(0)
}
