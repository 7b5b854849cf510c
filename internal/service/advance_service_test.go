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

type advanceFixture struct {
	advanceRepo *mocks.MockAdvanceRepo
	invoiceRepo *mocks.MockInvoiceRepo
	svc         service.AdvanceService

	developerID uuid.UUID
	advanceID   uuid.UUID
}

func newAdvanceFixture(t *testing.T) *advanceFixture {
	t.Helper()
	f := &advanceFixture{
		advanceRepo: new(mocks.MockAdvanceRepo),
		invoiceRepo: new(mocks.MockInvoiceRepo),
		developerID: uuid.New(),
		advanceID:   uuid.New(),
	}
	f.svc = service.NewAdvanceService(f.advanceRepo, f.invoiceRepo)
	return f
}

func (f *advanceFixture) advance(status domain.AdvanceStatus) *domain.Advance {
	return &domain.Advance{
		ID:          f.advanceID,
		DeveloperID: f.developerID,
		AdvanceDate: day("2026-01-10"),
		Amount:      dec("5000"),
		Status:      status,
	}
}

func TestAdvanceCreateRejectsNonPositiveAmount(t *testing.T) {
	f := newAdvanceFixture(t)

	for _, amount := range []string{"0", "-100"} {
		_, err := f.svc.Create(context.Background(), service.CreateAdvanceInput{
			DeveloperID: f.developerID,
			AdvanceDate: day("2026-01-10"),
			Amount:      dec(amount),
		})
		assert.ErrorIs(t, err, domain.ErrNegativeAmount, "amount %s", amount)
	}
	f.advanceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdvanceAdjust(t *testing.T) {
	f := newAdvanceFixture(t)

	f.advanceRepo.On("GetByID", mock.Anything, f.advanceID).
		Return(f.advance(domain.AdvanceStatusPending), nil)
	f.invoiceRepo.On("GetByNumber", mock.Anything, "INV-2026-0003").Return(&domain.Invoice{
		InvoiceNumber: "INV-2026-0003",
		DeveloperID:   f.developerID,
	}, nil)
	f.advanceRepo.On("MarkAdjusted", mock.Anything, f.advanceID, "INV-2026-0003").Return(nil)

	adv, err := f.svc.Adjust(context.Background(), f.advanceID, service.AdjustAdvanceInput{
		InvoiceNumber: "INV-2026-0003",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.AdvanceStatusAdjusted, adv.Status)
	assert.Equal(t, "INV-2026-0003", *adv.InvoiceNumber)
}

func TestAdvanceAdjustRejectsAlreadyAdjusted(t *testing.T) {
	f := newAdvanceFixture(t)

	f.advanceRepo.On("GetByID", mock.Anything, f.advanceID).
		Return(f.advance(domain.AdvanceStatusAdjusted), nil)

	_, err := f.svc.Adjust(context.Background(), f.advanceID, service.AdjustAdvanceInput{
		InvoiceNumber: "INV-2026-0003",
	})
	assert.ErrorIs(t, err, domain.ErrAdvanceAlreadyAdjusted)
	f.advanceRepo.AssertNotCalled(t, "MarkAdjusted", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvanceAdjustRejectsForeignInvoice(t *testing.T) {
	f := newAdvanceFixture(t)

	f.advanceRepo.On("GetByID", mock.Anything, f.advanceID).
		Return(f.advance(domain.AdvanceStatusPending), nil)
	f.invoiceRepo.On("GetByNumber", mock.Anything, "INV-2026-0003").Return(&domain.Invoice{
		InvoiceNumber: "INV-2026-0003",
		DeveloperID:   uuid.New(),
	}, nil)

	_, err := f.svc.Adjust(context.Background(), f.advanceID, service.AdjustAdvanceInput{
		InvoiceNumber: "INV-2026-0003",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
