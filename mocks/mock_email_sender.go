package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInvoiceIssued(ctx context.Context, toEmail, toName, invoiceNumber, netAmount string) error {
	args := m.Called(ctx, toEmail, toName, invoiceNumber, netAmount)
	return args.Error(0)
}

func (m *MockEmailSender) SendPaymentRecorded(ctx context.Context, toEmail, toName, amount string, invoiceNumbers []string) error {
	args := m.Called(ctx, toEmail, toName, amount, invoiceNumbers)
	return args.Error(0)
}
