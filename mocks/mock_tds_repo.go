package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"crbill/internal/domain"
)

// MockTDSRepo is a mock implementation of port.TDSRepository.
type MockTDSRepo struct {
	mock.Mock
}

func (m *MockTDSRepo) Append(ctx context.Context, rate *domain.TDSRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockTDSRepo) History(ctx context.Context) ([]domain.TDSRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TDSRate), args.Error(1)
}

func (m *MockTDSRepo) Current(ctx context.Context) (*domain.TDSRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TDSRate), args.Error(1)
}
