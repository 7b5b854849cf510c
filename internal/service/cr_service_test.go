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

type crFixture struct {
	crRepo  *mocks.MockCRRepo
	devRepo *mocks.MockDeveloperRepo
	svc     service.CRService

	developerID uuid.UUID
}

func newCRFixture(t *testing.T) *crFixture {
	t.Helper()
	f := &crFixture{
		crRepo:      new(mocks.MockCRRepo),
		devRepo:     new(mocks.MockDeveloperRepo),
		developerID: uuid.New(),
	}
	f.svc = service.NewCRService(f.crRepo, f.devRepo)
	return f
}

func (f *crFixture) cr(status domain.CRStatus) *domain.ChangeRequest {
	return &domain.ChangeRequest{
		CRNumber:    "CR-2026-0001",
		DeveloperID: f.developerID,
		Status:      status,
	}
}

func TestCRCreate(t *testing.T) {
	f := newCRFixture(t)

	f.crRepo.On("NextSequence", mock.Anything).Return(int64(12), nil)
	f.crRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	cr, err := f.svc.Create(context.Background(), service.CreateCRInput{
		Title:       "Add export button",
		Description: "Export the invoice register as a spreadsheet",
		ClientID:    uuid.New(),
		DeveloperID: f.developerID,
		Priority:    domain.PriorityHigh,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.CRStatusEstimationPending, cr.Status)
	assert.Regexp(t, `^CR-\d{4}-0012$`, cr.CRNumber)
}

func TestCRCreateRejectsUnknownPriority(t *testing.T) {
	f := newCRFixture(t)

	_, err := f.svc.Create(context.Background(), service.CreateCRInput{
		Title:       "x",
		Description: "y",
		ClientID:    uuid.New(),
		DeveloperID: f.developerID,
		Priority:    domain.CRPriority("Urgent"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
}

func TestCREstimateDerivesAmount(t *testing.T) {
	f := newCRFixture(t)

	f.crRepo.On("GetByNumber", mock.Anything, "CR-2026-0001").
		Return(f.cr(domain.CRStatusEstimationPending), nil)
	f.devRepo.On("GetByID", mock.Anything, f.developerID).Return(&domain.Developer{
		ID:         f.developerID,
		HourlyRate: dec("250"),
	}, nil)
	f.crRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	cr, err := f.svc.Estimate(context.Background(), "CR-2026-0001", service.EstimateInput{
		EstimatedHours: dec("12.5"),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.CRStatusApprovalPending, cr.Status)
	assert.True(t, cr.EstimatedAmount.Equal(dec("3125")), "12.5h at 250/h")
}

func TestCREstimateRejectsWrongState(t *testing.T) {
	f := newCRFixture(t)

	f.crRepo.On("GetByNumber", mock.Anything, "CR-2026-0001").
		Return(f.cr(domain.CRStatusInProgress), nil)

	_, err := f.svc.Estimate(context.Background(), "CR-2026-0001", service.EstimateInput{
		EstimatedHours: dec("8"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestCRDecideReject(t *testing.T) {
	f := newCRFixture(t)

	f.crRepo.On("GetByNumber", mock.Anything, "CR-2026-0001").
		Return(f.cr(domain.CRStatusApprovalPending), nil)
	f.crRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	cr, err := f.svc.Decide(context.Background(), "CR-2026-0001", service.ApprovalInput{
		Action:  "reject",
		Remarks: "out of budget this quarter",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.CRStatusRejected, cr.Status)
	assert.Equal(t, "out of budget this quarter", cr.Remarks)
}

func TestCRStatusWalkToBilling(t *testing.T) {
	f := newCRFixture(t)

	steps := []struct {
		from domain.CRStatus
		to   domain.CRStatus
	}{
		{domain.CRStatusInDevelopment, domain.CRStatusInProgress},
		{domain.CRStatusInProgress, domain.CRStatusUnderUAT},
		{domain.CRStatusUnderUAT, domain.CRStatusInProduction},
		{domain.CRStatusInProduction, domain.CRStatusReadyForBilling},
	}

	f.crRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	for _, step := range steps {
		f.crRepo.On("GetByNumber", mock.Anything, "CR-2026-0001").Return(f.cr(step.from), nil).Once()

		hours := dec("40")
		cr, err := f.svc.UpdateStatus(context.Background(), "CR-2026-0001", service.StatusInput{
			Status:      step.to,
			ActualHours: &hours,
		})
		assert.NoError(t, err, "%s -> %s", step.from, step.to)
		assert.Equal(t, step.to, cr.Status)
	}
}

func TestCRStatusRejectsSkip(t *testing.T) {
	f := newCRFixture(t)

	f.crRepo.On("GetByNumber", mock.Anything, "CR-2026-0001").
		Return(f.cr(domain.CRStatusInProgress), nil)

	_, err := f.svc.UpdateStatus(context.Background(), "CR-2026-0001", service.StatusInput{
		Status: domain.CRStatusReadyForBilling,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestCRReadyForBillingRequiresHours(t *testing.T) {
	f := newCRFixture(t)

	f.crRepo.On("GetByNumber", mock.Anything, "CR-2026-0001").
		Return(f.cr(domain.CRStatusInProduction), nil)

	_, err := f.svc.UpdateStatus(context.Background(), "CR-2026-0001", service.StatusInput{
		Status: domain.CRStatusReadyForBilling,
	})
	assert.ErrorIs(t, err, domain.ErrCRNotBillable)
}
