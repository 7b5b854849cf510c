package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"crbill/internal/domain"
	"crbill/internal/port"
)

// CreateUserInput is the DTO for creating a console user.
type CreateUserInput struct {
	Email       string          `json:"email" binding:"required,email"`
	Password    string          `json:"password" binding:"required,min=8"`
	FullName    string          `json:"full_name" binding:"required"`
	Role        domain.UserRole `json:"role" binding:"required,oneof=admin client developer"`
	ClientID    *uuid.UUID      `json:"client_id"`
	DeveloperID *uuid.UUID      `json:"developer_id"`
}

// UserService defines the user management contract.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type userService struct {
	userRepo port.UserRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(userRepo port.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	// Client and developer accounts must point at their owning record so
	// listings can be scoped to the caller.
	if input.Role == domain.RoleClient && input.ClientID == nil {
		return nil, fmt.Errorf("user.Create: client role requires client_id: %w", domain.ErrForbidden)
	}
	if input.Role == domain.RoleDeveloper && input.DeveloperID == nil {
		return nil, fmt.Errorf("user.Create: developer role requires developer_id: %w", domain.ErrForbidden)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("user.Create hash: %w", err)
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Role:         input.Role,
		ClientID:     input.ClientID,
		DeveloperID:  input.DeveloperID,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("user.Create: %w", err)
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user.GetByID: %w", err)
	}
	return user, nil
}
