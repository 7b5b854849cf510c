package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"crbill/internal/domain"
	"crbill/internal/port"
)

// ClientInput is the DTO for creating or updating a client organization.
type ClientInput struct {
	OrganizationName string `json:"organization_name" binding:"required"`
	ContactName      string `json:"contact_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	GSTIN            string `json:"gstin"`
}

// ClientService defines the client management contract.
type ClientService interface {
	Create(ctx context.Context, input ClientInput) (*domain.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, id uuid.UUID, input ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientService struct {
	clientRepo port.ClientRepository
}

// NewClientService creates a new ClientService implementation.
func NewClientService(clientRepo port.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) Create(ctx context.Context, input ClientInput) (*domain.Client, error) {
	client := &domain.Client{
		OrganizationName: input.OrganizationName,
		ContactName:      input.ContactName,
		Email:            input.Email,
		Phone:            input.Phone,
		Address:          input.Address,
		GSTIN:            input.GSTIN,
		IsActive:         true,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("client.Create: %w", err)
	}
	return client, nil
}

func (s *clientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("client.GetByID: %w", err)
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context, offset, limit int) ([]domain.Client, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	clients, total, err := s.clientRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("client.List: %w", err)
	}
	return clients, total, nil
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, input ClientInput) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("client.Update: %w", err)
	}

	client.OrganizationName = input.OrganizationName
	client.ContactName = input.ContactName
	client.Email = input.Email
	client.Phone = input.Phone
	client.Address = input.Address
	client.GSTIN = input.GSTIN

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("client.Update: %w", err)
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("client.Delete: %w", err)
	}
	return nil
}
