package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crbill/internal/billing"
	"crbill/internal/domain"
	"crbill/internal/port"
)

// CreateCRInput is the DTO for raising a change request.
type CreateCRInput struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description" binding:"required"`
	ClientID    uuid.UUID         `json:"client_id" binding:"required"`
	DeveloperID uuid.UUID         `json:"developer_id" binding:"required"`
	Priority    domain.CRPriority `json:"priority" binding:"required"`
	TargetDate  *time.Time        `json:"target_date"`
}

// UpdateCRInput is the DTO for editing a change request's descriptive fields.
type UpdateCRInput struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Priority    domain.CRPriority `json:"priority" binding:"required"`
	TargetDate  *time.Time        `json:"target_date"`
	Remarks     string            `json:"remarks"`
}

// EstimateInput is the DTO for a developer's effort estimate.
type EstimateInput struct {
	EstimatedHours decimal.Decimal `json:"estimated_hours" binding:"required"`
}

// ApprovalInput is the DTO for a client's approve/reject decision.
type ApprovalInput struct {
	Action  string `json:"action" binding:"required,oneof=approve reject"`
	Remarks string `json:"remarks"`
}

// StatusInput is the DTO for moving a CR along its lifecycle.
type StatusInput struct {
	Status      domain.CRStatus  `json:"status" binding:"required"`
	ActualHours *decimal.Decimal `json:"actual_hours"`
	Remarks     string           `json:"remarks"`
}

// ReadyForBillingInput is the DTO for closing out development work.
type ReadyForBillingInput struct {
	ActualHours decimal.Decimal `json:"actual_hours" binding:"required"`
}

// CRService defines the change request workflow contract.
type CRService interface {
	Create(ctx context.Context, input CreateCRInput) (*domain.ChangeRequest, error)
	GetByNumber(ctx context.Context, crNumber string) (*domain.ChangeRequest, error)
	List(ctx context.Context, filters *domain.CRFilters, offset, limit int) ([]domain.ChangeRequest, int, error)
	Update(ctx context.Context, crNumber string, input UpdateCRInput) (*domain.ChangeRequest, error)
	Estimate(ctx context.Context, crNumber string, input EstimateInput) (*domain.ChangeRequest, error)
	Decide(ctx context.Context, crNumber string, input ApprovalInput) (*domain.ChangeRequest, error)
	UpdateStatus(ctx context.Context, crNumber string, input StatusInput) (*domain.ChangeRequest, error)
	ReadyForBilling(ctx context.Context, crNumber string, input ReadyForBillingInput) (*domain.ChangeRequest, error)
}

type crService struct {
	crRepo  port.CRRepository
	devRepo port.DeveloperRepository
}

// NewCRService creates a new CRService implementation.
func NewCRService(crRepo port.CRRepository, devRepo port.DeveloperRepository) CRService {
	return &crService{crRepo: crRepo, devRepo: devRepo}
}

func (s *crService) Create(ctx context.Context, input CreateCRInput) (*domain.ChangeRequest, error) {
	if !domain.ValidPriorities[input.Priority] {
		return nil, domain.ErrInvalidPriority
	}

	seq, err := s.crRepo.NextSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("cr.Create: %w", err)
	}

	cr := &domain.ChangeRequest{
		CRNumber:    fmt.Sprintf("CR-%d-%04d", time.Now().Year(), seq),
		Title:       input.Title,
		Description: input.Description,
		ClientID:    input.ClientID,
		DeveloperID: input.DeveloperID,
		Priority:    input.Priority,
		Status:      domain.CRStatusEstimationPending,
		TargetDate:  input.TargetDate,
	}
	if err := s.crRepo.Create(ctx, cr); err != nil {
		return nil, fmt.Errorf("cr.Create: %w", err)
	}
	return cr, nil
}

func (s *crService) GetByNumber(ctx context.Context, crNumber string) (*domain.ChangeRequest, error) {
	cr, err := s.crRepo.GetByNumber(ctx, crNumber)
	if err != nil {
		return nil, fmt.Errorf("cr.GetByNumber: %w", err)
	}
	return cr, nil
}

func (s *crService) List(ctx context.Context, filters *domain.CRFilters, offset, limit int) ([]domain.ChangeRequest, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	crs, total, err := s.crRepo.List(ctx, filters, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("cr.List: %w", err)
	}
	return crs, total, nil
}

func (s *crService) Update(ctx context.Context, crNumber string, input UpdateCRInput) (*domain.ChangeRequest, error) {
	if !domain.ValidPriorities[input.Priority] {
		return nil, domain.ErrInvalidPriority
	}

	cr, err := s.crRepo.GetByNumber(ctx, crNumber)
	if err != nil {
		return nil, fmt.Errorf("cr.Update: %w", err)
	}

	cr.Title = input.Title
	cr.Description = input.Description
	cr.Priority = input.Priority
	cr.TargetDate = input.TargetDate
	cr.Remarks = input.Remarks

	if err := s.crRepo.Update(ctx, cr); err != nil {
		return nil, fmt.Errorf("cr.Update: %w", err)
	}
	return cr, nil
}

// Estimate records the developer's estimated hours, derives the estimated
// amount from the developer's hourly rate, and moves the CR to Approval
// Pending.
func (s *crService) Estimate(ctx context.Context, crNumber string, input EstimateInput) (*domain.ChangeRequest, error) {
	if input.EstimatedHours.IsNegative() || input.EstimatedHours.IsZero() {
		return nil, domain.ErrNegativeAmount
	}

	cr, err := s.crRepo.GetByNumber(ctx, crNumber)
	if err != nil {
		return nil, fmt.Errorf("cr.Estimate: %w", err)
	}
	if !domain.CanTransition(cr.Status, domain.CRStatusApprovalPending) {
		return nil, domain.ErrInvalidStatusTransition
	}

	dev, err := s.devRepo.GetByID(ctx, cr.DeveloperID)
	if err != nil {
		return nil, fmt.Errorf("cr.Estimate: %w", err)
	}

	amount := billing.Round2(input.EstimatedHours.Mul(dev.HourlyRate))
	cr.EstimatedHours = &input.EstimatedHours
	cr.EstimatedAmount = &amount
	cr.Status = domain.CRStatusApprovalPending

	if err := s.crRepo.Update(ctx, cr); err != nil {
		return nil, fmt.Errorf("cr.Estimate: %w", err)
	}
	return cr, nil
}

// Decide applies the client's approve or reject decision to a CR awaiting
// approval.
func (s *crService) Decide(ctx context.Context, crNumber string, input ApprovalInput) (*domain.ChangeRequest, error) {
	cr, err := s.crRepo.GetByNumber(ctx, crNumber)
	if err != nil {
		return nil, fmt.Errorf("cr.Decide: %w", err)
	}

	target := domain.CRStatusInDevelopment
	if input.Action == "reject" {
		target = domain.CRStatusRejected
	}
	if !domain.CanTransition(cr.Status, target) {
		return nil, domain.ErrInvalidStatusTransition
	}

	cr.Status = target
	if input.Remarks != "" {
		cr.Remarks = input.Remarks
	}

	if err := s.crRepo.Update(ctx, cr); err != nil {
		return nil, fmt.Errorf("cr.Decide: %w", err)
	}
	return cr, nil
}

func (s *crService) UpdateStatus(ctx context.Context, crNumber string, input StatusInput) (*domain.ChangeRequest, error) {
	cr, err := s.crRepo.GetByNumber(ctx, crNumber)
	if err != nil {
		return nil, fmt.Errorf("cr.UpdateStatus: %w", err)
	}
	if !domain.CanTransition(cr.Status, input.Status) {
		return nil, domain.ErrInvalidStatusTransition
	}

	// Billing needs the actual effort; require it before the CR can be
	// marked billable.
	if input.Status == domain.CRStatusReadyForBilling {
		if input.ActualHours == nil && cr.ActualHours == nil {
			return nil, domain.ErrCRNotBillable
		}
	}
	if input.ActualHours != nil {
		if input.ActualHours.IsNegative() || input.ActualHours.IsZero() {
			return nil, domain.ErrNegativeAmount
		}
		cr.ActualHours = input.ActualHours
	}

	cr.Status = input.Status
	if input.Remarks != "" {
		cr.Remarks = input.Remarks
	}

	if err := s.crRepo.Update(ctx, cr); err != nil {
		return nil, fmt.Errorf("cr.UpdateStatus: %w", err)
	}
	return cr, nil
}

// ReadyForBilling records the actual hours and moves the CR into the billable
// state in one step.
func (s *crService) ReadyForBilling(ctx context.Context, crNumber string, input ReadyForBillingInput) (*domain.ChangeRequest, error) {
	hours := input.ActualHours
	return s.UpdateStatus(ctx, crNumber, StatusInput{
		Status:      domain.CRStatusReadyForBilling,
		ActualHours: &hours,
	})
}
