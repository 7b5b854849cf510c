package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"crbill/internal/config"
	"crbill/internal/domain"
	"crbill/internal/port"
	"crbill/internal/service"
	"crbill/mocks"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

type invoiceFixture struct {
	invoiceRepo *mocks.MockInvoiceRepo
	crRepo      *mocks.MockCRRepo
	devRepo     *mocks.MockDeveloperRepo
	clientRepo  *mocks.MockClientRepo
	advanceRepo *mocks.MockAdvanceRepo
	tdsRepo     *mocks.MockTDSRepo
	storage     *mocks.MockObjectStorage
	email       *mocks.MockEmailSender
	svc         service.InvoiceService

	crNumber    string
	clientID    uuid.UUID
	developerID uuid.UUID
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	f := &invoiceFixture{
		invoiceRepo: new(mocks.MockInvoiceRepo),
		crRepo:      new(mocks.MockCRRepo),
		devRepo:     new(mocks.MockDeveloperRepo),
		clientRepo:  new(mocks.MockClientRepo),
		advanceRepo: new(mocks.MockAdvanceRepo),
		tdsRepo:     new(mocks.MockTDSRepo),
		storage:     new(mocks.MockObjectStorage),
		email:       new(mocks.MockEmailSender),
		crNumber:    "CR-2026-0001",
		clientID:    uuid.New(),
		developerID: uuid.New(),
	}
	f.svc = service.NewInvoiceService(
		f.invoiceRepo, f.crRepo, f.devRepo, f.clientRepo,
		f.advanceRepo, f.tdsRepo, f.storage, f.email,
		config.S3Config{Bucket: "crbill-invoices", PresignExpiry: 3600},
	)
	return f
}

func (f *invoiceFixture) billableCR(actualHours string) *domain.ChangeRequest {
	hours := dec(actualHours)
	return &domain.ChangeRequest{
		CRNumber:    f.crNumber,
		Title:       "Payment gateway integration",
		ClientID:    f.clientID,
		DeveloperID: f.developerID,
		Status:      domain.CRStatusReadyForBilling,
		ActualHours: &hours,
	}
}

func (f *invoiceFixture) expectParties() {
	f.devRepo.On("GetByID", mock.Anything, f.developerID).Return(&domain.Developer{
		ID:         f.developerID,
		Name:       "Asha Verma",
		Email:      "asha@example.com",
		HourlyRate: dec("200"),
	}, nil)
	f.clientRepo.On("GetByID", mock.Anything, f.clientID).Return(&domain.Client{
		ID:               f.clientID,
		OrganizationName: "Acme Corp",
	}, nil)
}

func TestInvoiceGenerate(t *testing.T) {
	f := newInvoiceFixture(t)

	f.crRepo.On("GetByNumber", mock.Anything, f.crNumber).Return(f.billableCR("50"), nil)
	f.expectParties()
	f.tdsRepo.On("History", mock.Anything).Return([]domain.TDSRate{
		{EffectiveDate: day("2024-04-01"), Percentage: dec("10")},
	}, nil)
	f.advanceRepo.On("PendingTotal", mock.Anything, f.developerID).Return(dec("1500"), nil)
	f.advanceRepo.On("PendingOldestFirst", mock.Anything, f.developerID).Return([]domain.Advance{
		{ID: uuid.New(), DeveloperID: f.developerID, AdvanceDate: day("2026-01-10"), Amount: dec("600")},
		{ID: uuid.New(), DeveloperID: f.developerID, AdvanceDate: day("2026-02-15"), Amount: dec("900")},
	}, nil)
	f.invoiceRepo.On("NextSequence", mock.Anything).Return(int64(7), nil)
	f.invoiceRepo.On("CreateWithBilling", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	f.invoiceRepo.On("SetDocumentKey", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.email.On("SendInvoiceIssued", mock.Anything, "asha@example.com", "Asha Verma", mock.Anything, mock.Anything).Return(nil)

	inv, err := f.svc.Generate(context.Background(), service.GenerateInvoiceInput{
		CRNumber:      f.crNumber,
		AdvanceAmount: dec("1000"),
	})

	assert.NoError(t, err)
	assert.True(t, inv.GrossAmount.Equal(dec("10000")), "gross = 50h * 200")
	assert.True(t, inv.TDSAmount.Equal(dec("1000")))
	assert.True(t, inv.NetAmount.Equal(dec("8000")))
	assert.True(t, inv.BalanceAmount.Equal(inv.NetAmount), "new invoice starts fully unpaid")
	assert.True(t, inv.TDSPercentage.Equal(dec("10")), "rate frozen on the invoice")
	assert.Equal(t, domain.InvoiceStatusGenerated, inv.Status)

	// Advance consumption: 600 fully, 400 out of 900, remainder 500 re-pended.
	call := f.invoiceRepo.Calls[1]
	consumed := call.Arguments.Get(2).([]domain.Advance)
	remainder := call.Arguments.Get(3).(*domain.Advance)
	assert.Len(t, consumed, 2)
	assert.True(t, consumed[0].Amount.Equal(dec("600")))
	assert.True(t, consumed[1].Amount.Equal(dec("400")))
	assert.NotNil(t, remainder)
	assert.True(t, remainder.Amount.Equal(dec("500")))
	assert.Equal(t, domain.AdvanceStatusPending, remainder.Status)
}

func TestInvoiceGenerateNoAdvance(t *testing.T) {
	f := newInvoiceFixture(t)

	f.crRepo.On("GetByNumber", mock.Anything, f.crNumber).Return(f.billableCR("8"), nil)
	f.expectParties()
	f.tdsRepo.On("History", mock.Anything).Return([]domain.TDSRate{
		{EffectiveDate: day("2024-04-01"), Percentage: dec("2")},
	}, nil)
	f.invoiceRepo.On("NextSequence", mock.Anything).Return(int64(1), nil)
	f.invoiceRepo.On("CreateWithBilling", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	f.invoiceRepo.On("SetDocumentKey", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.email.On("SendInvoiceIssued", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	inv, err := f.svc.Generate(context.Background(), service.GenerateInvoiceInput{CRNumber: f.crNumber})

	assert.NoError(t, err)
	assert.True(t, inv.GrossAmount.Equal(dec("1600")))
	assert.True(t, inv.TDSAmount.Equal(dec("32")))
	assert.True(t, inv.NetAmount.Equal(dec("1568")))
	f.advanceRepo.AssertNotCalled(t, "PendingOldestFirst", mock.Anything, mock.Anything)
}

func TestInvoiceGenerateFullyCoveredByAdvance(t *testing.T) {
	f := newInvoiceFixture(t)

	f.crRepo.On("GetByNumber", mock.Anything, f.crNumber).Return(f.billableCR("50"), nil)
	f.expectParties()
	f.tdsRepo.On("History", mock.Anything).Return([]domain.TDSRate{
		{EffectiveDate: day("2024-04-01"), Percentage: dec("10")},
	}, nil)
	f.advanceRepo.On("PendingTotal", mock.Anything, f.developerID).Return(dec("9000"), nil)
	f.advanceRepo.On("PendingOldestFirst", mock.Anything, f.developerID).Return([]domain.Advance{
		{ID: uuid.New(), DeveloperID: f.developerID, AdvanceDate: day("2026-01-10"), Amount: dec("9000")},
	}, nil)
	f.invoiceRepo.On("NextSequence", mock.Anything).Return(int64(9), nil)
	f.invoiceRepo.On("CreateWithBilling", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	f.invoiceRepo.On("SetDocumentKey", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.email.On("SendInvoiceIssued", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// The advance covers the entire net: 10000 gross - 1000 TDS - 9000.
	inv, err := f.svc.Generate(context.Background(), service.GenerateInvoiceInput{
		CRNumber:      f.crNumber,
		AdvanceAmount: dec("9000"),
	})

	assert.NoError(t, err)
	assert.True(t, inv.NetAmount.IsZero())
	assert.True(t, inv.BalanceAmount.IsZero())
	assert.Equal(t, domain.InvoiceStatusPaid, inv.Status, "nothing left to collect")
}

func TestInvoiceGenerateNotBillable(t *testing.T) {
	f := newInvoiceFixture(t)

	cr := f.billableCR("50")
	cr.Status = domain.CRStatusInProgress
	f.crRepo.On("GetByNumber", mock.Anything, f.crNumber).Return(cr, nil)

	_, err := f.svc.Generate(context.Background(), service.GenerateInvoiceInput{CRNumber: f.crNumber})
	assert.ErrorIs(t, err, domain.ErrCRNotBillable)
}

func TestInvoiceGenerateNoTDSRate(t *testing.T) {
	f := newInvoiceFixture(t)

	f.crRepo.On("GetByNumber", mock.Anything, f.crNumber).Return(f.billableCR("50"), nil)
	f.expectParties()
	f.tdsRepo.On("History", mock.Anything).Return([]domain.TDSRate{
		{EffectiveDate: time.Now().AddDate(1, 0, 0), Percentage: dec("10")},
	}, nil)

	_, err := f.svc.Generate(context.Background(), service.GenerateInvoiceInput{CRNumber: f.crNumber})
	assert.ErrorIs(t, err, domain.ErrNoApplicableTDSRate)
}

func TestInvoiceGenerateAdvanceExceedsAvailable(t *testing.T) {
	f := newInvoiceFixture(t)

	f.crRepo.On("GetByNumber", mock.Anything, f.crNumber).Return(f.billableCR("50"), nil)
	f.expectParties()
	f.tdsRepo.On("History", mock.Anything).Return([]domain.TDSRate{
		{EffectiveDate: day("2024-04-01"), Percentage: dec("10")},
	}, nil)
	f.advanceRepo.On("PendingTotal", mock.Anything, f.developerID).Return(dec("500"), nil)

	_, err := f.svc.Generate(context.Background(), service.GenerateInvoiceInput{
		CRNumber:      f.crNumber,
		AdvanceAmount: dec("1000"),
	})
	assert.ErrorIs(t, err, domain.ErrAdvanceExceedsAvailable)
}

func TestInvoiceMarkSent(t *testing.T) {
	f := newInvoiceFixture(t)

	f.invoiceRepo.On("GetByNumber", mock.Anything, "INV-2026-0007").Return(&domain.Invoice{
		InvoiceNumber: "INV-2026-0007",
		Status:        domain.InvoiceStatusGenerated,
	}, nil)
	f.invoiceRepo.On("UpdateStatus", mock.Anything, "INV-2026-0007", domain.InvoiceStatusSent).Return(nil)

	inv, err := f.svc.MarkSent(context.Background(), "INV-2026-0007")
	assert.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, inv.Status)
}

func TestInvoiceMarkSentRejectsPaid(t *testing.T) {
	f := newInvoiceFixture(t)

	f.invoiceRepo.On("GetByNumber", mock.Anything, "INV-2026-0007").Return(&domain.Invoice{
		InvoiceNumber: "INV-2026-0007",
		Status:        domain.InvoiceStatusPaid,
	}, nil)

	_, err := f.svc.MarkSent(context.Background(), "INV-2026-0007")
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestInvoiceDocumentURL(t *testing.T) {
	f := newInvoiceFixture(t)

	f.invoiceRepo.On("GetByNumber", mock.Anything, "INV-2026-0007").Return(&domain.Invoice{
		InvoiceNumber: "INV-2026-0007",
		DocumentKey:   "invoices/2026/INV-2026-0007.xlsx",
	}, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "crbill-invoices", "invoices/2026/INV-2026-0007.xlsx", int64(3600)).
		Return("https://example.com/signed", nil)

	url, err := f.svc.DocumentURL(context.Background(), "INV-2026-0007")
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/signed", url)
}

func TestInvoiceDocumentURLNotArchived(t *testing.T) {
	f := newInvoiceFixture(t)

	f.invoiceRepo.On("GetByNumber", mock.Anything, "INV-2026-0007").Return(&domain.Invoice{
		InvoiceNumber: "INV-2026-0007",
	}, nil)

	_, err := f.svc.DocumentURL(context.Background(), "INV-2026-0007")
	assert.ErrorIs(t, err, domain.ErrDocumentNotArchived)
}
