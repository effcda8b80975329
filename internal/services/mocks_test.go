package services_test

import (
	"context"
	"io"

	"github.com/sikhmentors/directory-api/internal/models"
	"github.com/sikhmentors/directory-api/pkg/mailer"
	"github.com/stretchr/testify/mock"
)

// MockMentorStore is a mock implementation of repository.MentorStore
type MockMentorStore struct {
	mock.Mock
}

func (m *MockMentorStore) List(ctx context.Context, filter models.MentorFilter) ([]*models.Mentor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Mentor), args.Error(1)
}

func (m *MockMentorStore) GetByID(ctx context.Context, id int64) (*models.Mentor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorStore) Create(ctx context.Context, in *models.MentorInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMentorStore) Update(ctx context.Context, id int64, in *models.MentorInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockMentorStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAdminStore is a mock implementation of repository.AdminStore
type MockAdminStore struct {
	mock.Mock
}

func (m *MockAdminStore) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminStore) Create(ctx context.Context, email, passwordHash string) (*models.Admin, error) {
	args := m.Called(ctx, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

// MockAssetHost is a mock implementation of storage.AssetHost
type MockAssetHost struct {
	mock.Mock
}

func (m *MockAssetHost) Name() string { return "mock" }

func (m *MockAssetHost) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, body, size, contentType)
	return args.String(0), args.Error(1)
}

// MockMailer is a mock implementation of mailer.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Name() string { return "mock" }

func (m *MockMailer) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
