package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"crbill/internal/domain"
)

// MockDeveloperRepo is a mock implementation of port.DeveloperRepository.
type MockDeveloperRepo struct {
	mock.Mock
}

func (m *MockDeveloperRepo) Create(ctx context.Context, dev *domain.Developer) error {
	args := m.Called(ctx, dev)
	return args.Error(0)
}

func (m *MockDeveloperRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Developer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Developer), args.Error(1)
}

func (m *MockDeveloperRepo) List(ctx context.Context, offset, limit int) ([]domain.Developer, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Developer), args.Int(1), args.Error(2)
}

func (m *MockDeveloperRepo) Update(ctx context.Context, dev *domain.Developer) error {
	args := m.Called(ctx, dev)
	return args.Error(0)
}

func (m *MockDeveloperRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
