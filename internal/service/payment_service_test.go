package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"crbill/internal/domain"
	"crbill/internal/service"
	"crbill/mocks"
)

type paymentFixture struct {
	paymentRepo *mocks.MockPaymentRepo
	invoiceRepo *mocks.MockInvoiceRepo
	devRepo     *mocks.MockDeveloperRepo
	email       *mocks.MockEmailSender
	svc         service.PaymentService

	developerID uuid.UUID
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	f := &paymentFixture{
		paymentRepo: new(mocks.MockPaymentRepo),
		invoiceRepo: new(mocks.MockInvoiceRepo),
		devRepo:     new(mocks.MockDeveloperRepo),
		email:       new(mocks.MockEmailSender),
		developerID: uuid.New(),
	}
	f.svc = service.NewPaymentService(f.paymentRepo, f.invoiceRepo, f.devRepo, f.email)
	f.devRepo.On("GetByID", mock.Anything, f.developerID).Return(&domain.Developer{
		ID:    f.developerID,
		Name:  "Asha Verma",
		Email: "asha@example.com",
	}, nil)
	f.email.On("SendPaymentRecorded", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return f
}

func (f *paymentFixture) invoice(number, date, net, balance string) *domain.Invoice {
	return &domain.Invoice{
		InvoiceNumber: number,
		DeveloperID:   f.developerID,
		InvoiceDate:   day(date),
		NetAmount:     dec(net),
		BalanceAmount: dec(balance),
		Status:        domain.InvoiceStatusSent,
	}
}

func TestPaymentRecordAllocatesOldestFirst(t *testing.T) {
	f := newPaymentFixture(t)

	f.invoiceRepo.On("GetByNumber", mock.Anything, "INV-2026-0002").
		Return(f.invoice("INV-2026-0002", "2026-02-01", "5000", "5000"), nil)
	f.invoiceRepo.On("GetByNumber", mock.Anything, "INV-2026-0001").
		Return(f.invoice("INV-2026-0001", "2026-01-01", "3000", "3000"), nil)
	f.paymentRepo.On("RecordBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	payments, err := f.svc.Record(context.Background(), service.RecordPaymentInput{
		DeveloperID:    f.developerID,
		InvoiceNumbers: []string{"INV-2026-0002", "INV-2026-0001"},
		Amount:         dec("4000"),
		PaymentDate:    day("2026-03-01"),
		PaymentMode:    domain.PaymentModeBankTransfer,
	})

	assert.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, "INV-2026-0001", payments[0].InvoiceNumber)
	assert.True(t, payments[0].Amount.Equal(dec("3000")), "oldest invoice absorbed in full")
	assert.Equal(t, "INV-2026-0002", payments[1].InvoiceNumber)
	assert.True(t, payments[1].Amount.Equal(dec("1000")))
	assert.Equal(t, payments[0].BatchID, payments[1].BatchID)

	updated := f.paymentRepo.Calls[0].Arguments.Get(2).([]domain.Invoice)
	assert.True(t, updated[0].BalanceAmount.IsZero())
	assert.Equal(t, domain.InvoiceStatusPaid, updated[0].Status)
	assert.True(t, updated[1].BalanceAmount.Equal(dec("4000")))
	assert.Equal(t, domain.InvoiceStatusPartiallyPaid, updated[1].Status)
}

func TestPaymentRecordCountsDuplicateInvoiceOnce(t *testing.T) {
	f := newPaymentFixture(t)

	f.invoiceRepo.On("GetByNumber", mock.Anything, "INV-2026-0001").
		Return(f.invoice("INV-2026-0001", "2026-01-01", "3000", "3000"), nil)

	// Listing the invoice twice must not double its balance: 6000 still
	// exceeds the 3000 outstanding.
	_, err := f.svc.Record(context.Background(), service.RecordPaymentInput{
		DeveloperID:    f.developerID,
		InvoiceNumbers: []string{"INV-2026-0001", "INV-2026-0001"},
		Amount:         dec("6000"),
		PaymentDate:    day("2026-03-01"),
		PaymentMode:    domain.PaymentModeBankTransfer,
	})
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)
	f.paymentRepo.AssertNotCalled(t, "RecordBatch", mock.Anything, mock.Anything, mock.Anything)
	f.invoiceRepo.AssertNumberOfCalls(t, "GetByNumber", 1)
}

func TestPaymentRecordDuplicateInvoiceSingleAllocation(t *testing.T) {
	f := newPaymentFixture(t)

	f.invoiceRepo.On("GetByNumber", mock.Anything, "INV-2026-0001").
		Return(f.invoice("INV-2026-0001", "2026-01-01", "3000", "3000"), nil)
	f.paymentRepo.On("RecordBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	payments, err := f.svc.Record(context.Background(), service.RecordPaymentInput{
		DeveloperID:    f.developerID,
		InvoiceNumbers: []string{"INV-2026-0001", "INV-2026-0001"},
		Amount:         dec("2000"),
		PaymentDate:    day("2026-03-01"),
		PaymentMode:    domain.PaymentModeUPI,
	})

	assert.NoError(t, err)
	assert.Len(t, payments, 1, "one row per invoice, not per listing")
	assert.True(t, payments[0].Amount.Equal(dec("2000")))

	updated := f.paymentRepo.Calls[0].Arguments.Get(2).([]domain.Invoice)
	assert.Len(t, updated, 1)
	assert.True(t, updated[0].BalanceAmount.Equal(dec("1000")))
}

func TestPaymentRecordRejectsOverpayment(t *testing.T) {
	f := newPaymentFixture(t)

	f.invoiceRepo.On("GetByNumber", mock.Anything, "INV-2026-0001").
		Return(f.invoice("INV-2026-0001", "2026-01-01", "3000", "3000"), nil)

	_, err := f.svc.Record(context.Background(), service.RecordPaymentInput{
		DeveloperID:    f.developerID,
		InvoiceNumbers: []string{"INV-2026-0001"},
		Amount:         dec("3500"),
		PaymentDate:    day("2026-03-01"),
		PaymentMode:    domain.PaymentModeUPI,
	})
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)
	f.paymentRepo.AssertNotCalled(t, "RecordBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentRecordRejectsInvalidMode(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.Record(context.Background(), service.RecordPaymentInput{
		DeveloperID:    f.developerID,
		InvoiceNumbers: []string{"INV-2026-0001"},
		Amount:         dec("100"),
		PaymentDate:    day("2026-03-01"),
		PaymentMode:    domain.PaymentMode("Barter"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMode)
}

func TestPaymentRecordRejectsForeignInvoice(t *testing.T) {
	f := newPaymentFixture(t)

	other := f.invoice("INV-2026-0001", "2026-01-01", "3000", "3000")
	other.DeveloperID = uuid.New()
	f.invoiceRepo.On("GetByNumber", mock.Anything, "INV-2026-0001").Return(other, nil)

	_, err := f.svc.Record(context.Background(), service.RecordPaymentInput{
		DeveloperID:    f.developerID,
		InvoiceNumbers: []string{"INV-2026-0001"},
		Amount:         dec("100"),
		PaymentDate:    day("2026-03-01"),
		PaymentMode:    domain.PaymentModeCash,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPaymentDeleteRestoresBalance(t *testing.T) {
	f := newPaymentFixture(t)

	paymentID := uuid.New()
	f.paymentRepo.On("GetByID", mock.Anything, paymentID).Return(&domain.Payment{
		ID:            paymentID,
		InvoiceNumber: "INV-2026-0001",
		Amount:        dec("2000"),
	}, nil)
	inv := f.invoice("INV-2026-0001", "2026-01-01", "8000", "3000")
	inv.Status = domain.InvoiceStatusPartiallyPaid
	f.invoiceRepo.On("GetByNumber", mock.Anything, "INV-2026-0001").Return(inv, nil)
	f.paymentRepo.On("DeleteWithReversal", mock.Anything, paymentID, mock.Anything).Return(nil)

	err := f.svc.Delete(context.Background(), paymentID)
	assert.NoError(t, err)

	restored := f.paymentRepo.Calls[1].Arguments.Get(2).(*domain.Invoice)
	assert.True(t, restored.BalanceAmount.Equal(dec("5000")))
	assert.Equal(t, domain.InvoiceStatusPartiallyPaid, restored.Status)
}

func TestPaymentDeleteRejectsOverRestore(t *testing.T) {
	f := newPaymentFixture(t)

	paymentID := uuid.New()
	f.paymentRepo.On("GetByID", mock.Anything, paymentID).Return(&domain.Payment{
		ID:            paymentID,
		InvoiceNumber: "INV-2026-0001",
		Amount:        dec("9000"),
	}, nil)
	f.invoiceRepo.On("GetByNumber", mock.Anything, "INV-2026-0001").
		Return(f.invoice("INV-2026-0001", "2026-01-01", "8000", "3000"), nil)

	err := f.svc.Delete(context.Background(), paymentID)
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)
	f.paymentRepo.AssertNotCalled(t, "DeleteWithReversal", mock.Anything, mock.Anything, mock.Anything)
}
