package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"crbill/internal/domain"
)

// MockAdvanceRepo is a mock implementation of port.AdvanceRepository.
type MockAdvanceRepo struct {
	mock.Mock
}

func (m *MockAdvanceRepo) Create(ctx context.Context, advance *domain.Advance) error {
	args := m.Called(ctx, advance)
	return args.Error(0)
}

func (m *MockAdvanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Advance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Advance), args.Error(1)
}

func (m *MockAdvanceRepo) List(ctx context.Context, filters *domain.AdvanceFilters) ([]domain.Advance, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Advance), args.Error(1)
}

func (m *MockAdvanceRepo) MarkAdjusted(ctx context.Context, id uuid.UUID, invoiceNumber string) error {
	args := m.Called(ctx, id, invoiceNumber)
	return args.Error(0)
}

func (m *MockAdvanceRepo) PendingTotal(ctx context.Context, developerID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, developerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAdvanceRepo) PendingOldestFirst(ctx context.Context, developerID uuid.UUID) ([]domain.Advance, error) {
	args := m.Called(ctx, developerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Advance), args.Error(1)
}
