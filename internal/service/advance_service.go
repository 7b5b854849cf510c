package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crbill/internal/domain"
	"crbill/internal/port"
)

// CreateAdvanceInput is the DTO for recording an advance to a developer.
type CreateAdvanceInput struct {
	DeveloperID uuid.UUID       `json:"developer_id" binding:"required"`
	AdvanceDate time.Time       `json:"advance_date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Purpose     string          `json:"purpose"`
}

// AdjustAdvanceInput is the DTO for manually offsetting an advance against an
// invoice.
type AdjustAdvanceInput struct {
	InvoiceNumber string `json:"invoice_number" binding:"required"`
}

// AdvanceService defines the advance ledger contract.
type AdvanceService interface {
	Create(ctx context.Context, input CreateAdvanceInput) (*domain.Advance, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Advance, error)
	List(ctx context.Context, filters *domain.AdvanceFilters) ([]domain.Advance, error)
	Adjust(ctx context.Context, id uuid.UUID, input AdjustAdvanceInput) (*domain.Advance, error)
	PendingTotal(ctx context.Context, developerID uuid.UUID) (decimal.Decimal, error)
}

type advanceService struct {
	advanceRepo port.AdvanceRepository
	invoiceRepo port.InvoiceRepository
}

// NewAdvanceService creates a new AdvanceService implementation.
func NewAdvanceService(advanceRepo port.AdvanceRepository, invoiceRepo port.InvoiceRepository) AdvanceService {
	return &advanceService{advanceRepo: advanceRepo, invoiceRepo: invoiceRepo}
}

func (s *advanceService) Create(ctx context.Context, input CreateAdvanceInput) (*domain.Advance, error) {
	if input.Amount.IsNegative() || input.Amount.IsZero() {
		return nil, domain.ErrNegativeAmount
	}

	advance := &domain.Advance{
		DeveloperID: input.DeveloperID,
		AdvanceDate: input.AdvanceDate,
		Amount:      input.Amount,
		Purpose:     input.Purpose,
		Status:      domain.AdvanceStatusPending,
	}
	if err := s.advanceRepo.Create(ctx, advance); err != nil {
		return nil, fmt.Errorf("advance.Create: %w", err)
	}
	return advance, nil
}

func (s *advanceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Advance, error) {
	advance, err := s.advanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("advance.GetByID: %w", err)
	}
	return advance, nil
}

func (s *advanceService) List(ctx context.Context, filters *domain.AdvanceFilters) ([]domain.Advance, error) {
	advances, err := s.advanceRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("advance.List: %w", err)
	}
	return advances, nil
}

// Adjust marks a pending advance as offset against an existing invoice of the
// same developer.
func (s *advanceService) Adjust(ctx context.Context, id uuid.UUID, input AdjustAdvanceInput) (*domain.Advance, error) {
	advance, err := s.advanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("advance.Adjust: %w", err)
	}
	if advance.Status != domain.AdvanceStatusPending {
		return nil, domain.ErrAdvanceAlreadyAdjusted
	}

	inv, err := s.invoiceRepo.GetByNumber(ctx, input.InvoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("advance.Adjust: %w", err)
	}
	if inv.DeveloperID != advance.DeveloperID {
		return nil, domain.ErrForbidden
	}

	if err := s.advanceRepo.MarkAdjusted(ctx, id, inv.InvoiceNumber); err != nil {
		return nil, fmt.Errorf("advance.Adjust: %w", err)
	}

	advance.Status = domain.AdvanceStatusAdjusted
	advance.InvoiceNumber = &inv.InvoiceNumber
	return advance, nil
}

func (s *advanceService) PendingTotal(ctx context.Context, developerID uuid.UUID) (decimal.Decimal, error) {
	total, err := s.advanceRepo.PendingTotal(ctx, developerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("advance.PendingTotal: %w", err)
	}
	return total, nil
}
