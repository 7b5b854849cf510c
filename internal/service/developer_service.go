package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crbill/internal/domain"
	"crbill/internal/port"
)

// DeveloperInput is the DTO for creating or updating a developer.
type DeveloperInput struct {
	Name        string          `json:"name" binding:"required"`
	Email       string          `json:"email" binding:"required,email"`
	Phone       string          `json:"phone"`
	HourlyRate  decimal.Decimal `json:"hourly_rate" binding:"required"`
	PAN         string          `json:"pan"`
	BankName    string          `json:"bank_name"`
	BankAccount string          `json:"bank_account"`
	IFSC        string          `json:"ifsc"`
}

// DeveloperService defines the developer management contract.
type DeveloperService interface {
	Create(ctx context.Context, input DeveloperInput) (*domain.Developer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Developer, error)
	List(ctx context.Context, offset, limit int) ([]domain.Developer, int, error)
	Update(ctx context.Context, id uuid.UUID, input DeveloperInput) (*domain.Developer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type developerService struct {
	devRepo port.DeveloperRepository
}

// NewDeveloperService creates a new DeveloperService implementation.
func NewDeveloperService(devRepo port.DeveloperRepository) DeveloperService {
	return &developerService{devRepo: devRepo}
}

func (s *developerService) Create(ctx context.Context, input DeveloperInput) (*domain.Developer, error) {
	if input.HourlyRate.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	dev := &domain.Developer{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		HourlyRate:  input.HourlyRate,
		PAN:         input.PAN,
		BankName:    input.BankName,
		BankAccount: input.BankAccount,
		IFSC:        input.IFSC,
		IsActive:    true,
	}
	if err := s.devRepo.Create(ctx, dev); err != nil {
		return nil, fmt.Errorf("developer.Create: %w", err)
	}
	return dev, nil
}

func (s *developerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Developer, error) {
	dev, err := s.devRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("developer.GetByID: %w", err)
	}
	return dev, nil
}

func (s *developerService) List(ctx context.Context, offset, limit int) ([]domain.Developer, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	devs, total, err := s.devRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("developer.List: %w", err)
	}
	return devs, total, nil
}

func (s *developerService) Update(ctx context.Context, id uuid.UUID, input DeveloperInput) (*domain.Developer, error) {
	if input.HourlyRate.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	dev, err := s.devRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("developer.Update: %w", err)
	}

	dev.Name = input.Name
	dev.Email = input.Email
	dev.Phone = input.Phone
	dev.HourlyRate = input.HourlyRate
	dev.PAN = input.PAN
	dev.BankName = input.BankName
	dev.BankAccount = input.BankAccount
	dev.IFSC = input.IFSC

	if err := s.devRepo.Update(ctx, dev); err != nil {
		return nil, fmt.Errorf("developer.Update: %w", err)
	}
	return dev, nil
}

func (s *developerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.devRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("developer.Delete: %w", err)
	}
	return nil
}
