package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"crbill/internal/domain"
)

// MockReportRepo is a mock implementation of port.ReportRepository.
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Outstanding(ctx context.Context) ([]domain.OutstandingRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutstandingRow), args.Error(1)
}
