package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"crbill/internal/domain"
)

// MockCRRepo is a mock implementation of port.CRRepository.
type MockCRRepo struct {
	mock.Mock
}

func (m *MockCRRepo) Create(ctx context.Context, cr *domain.ChangeRequest) error {
	args := m.Called(ctx, cr)
	return args.Error(0)
}

func (m *MockCRRepo) GetByNumber(ctx context.Context, crNumber string) (*domain.ChangeRequest, error) {
	args := m.Called(ctx, crNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChangeRequest), args.Error(1)
}

func (m *MockCRRepo) List(ctx context.Context, filters *domain.CRFilters, offset, limit int) ([]domain.ChangeRequest, int, error) {
	args := m.Called(ctx, filters, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ChangeRequest), args.Int(1), args.Error(2)
}

func (m *MockCRRepo) Update(ctx context.Context, cr *domain.ChangeRequest) error {
	args := m.Called(ctx, cr)
	return args.Error(0)
}

func (m *MockCRRepo) NextSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCRRepo) CountByStatus(ctx context.Context) ([]domain.CRStatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CRStatusCount), args.Error(1)
}
