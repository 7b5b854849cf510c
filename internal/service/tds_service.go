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

var tdsHundred = decimal.NewFromInt(100)

// SetTDSRateInput is the DTO for appending a dated TDS rate.
type SetTDSRateInput struct {
	EffectiveDate time.Time       `json:"effective_date" binding:"required"`
	Percentage    decimal.Decimal `json:"percentage" binding:"required"`
}

// TDSService defines the TDS rate history contract.
type TDSService interface {
	SetRate(ctx context.Context, createdBy uuid.UUID, input SetTDSRateInput) (*domain.TDSRate, error)
	History(ctx context.Context) ([]domain.TDSRate, error)
	Current(ctx context.Context) (*domain.TDSRate, error)
}

type tdsService struct {
	tdsRepo port.TDSRepository
}

// NewTDSService creates a new TDSService implementation.
func NewTDSService(tdsRepo port.TDSRepository) TDSService {
	return &tdsService{tdsRepo: tdsRepo}
}

// SetRate appends a new dated rate. The history is append-only; earlier
// invoices keep the percentage frozen at their generation time.
func (s *tdsService) SetRate(ctx context.Context, createdBy uuid.UUID, input SetTDSRateInput) (*domain.TDSRate, error) {
	if input.Percentage.IsNegative() || input.Percentage.GreaterThan(tdsHundred) {
		return nil, domain.ErrInvalidPercentage
	}

	rate := &domain.TDSRate{
		EffectiveDate: input.EffectiveDate,
		Percentage:    input.Percentage,
		CreatedBy:     createdBy,
	}
	if err := s.tdsRepo.Append(ctx, rate); err != nil {
		return nil, fmt.Errorf("tds.SetRate: %w", err)
	}
	return rate, nil
}

func (s *tdsService) History(ctx context.Context) ([]domain.TDSRate, error) {
	rates, err := s.tdsRepo.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("tds.History: %w", err)
	}
	return rates, nil
}

func (s *tdsService) Current(ctx context.Context) (*domain.TDSRate, error) {
	rate, err := s.tdsRepo.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("tds.Current: %w", err)
	}
	return rate, nil
}
