package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"crbill/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) CreateWithBilling(ctx context.Context, inv *domain.Invoice, consumed []domain.Advance, remainder *domain.Advance) error {
	args := m.Called(ctx, inv, consumed, remainder)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) List(ctx context.Context, filters *domain.InvoiceFilters) ([]domain.Invoice, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) UpdateStatus(ctx context.Context, invoiceNumber string, status domain.InvoiceStatus) error {
	args := m.Called(ctx, invoiceNumber, status)
	return args.Error(0)
}

func (m *MockInvoiceRepo) SetDocumentKey(ctx context.Context, invoiceNumber, key string) error {
	args := m.Called(ctx, invoiceNumber, key)
	return args.Error(0)
}

func (m *MockInvoiceRepo) NextSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
