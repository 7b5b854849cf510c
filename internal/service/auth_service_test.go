package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"crbill/internal/config"
	"crbill/internal/domain"
	"crbill/internal/service"
	"crbill/mocks"
)

type authFixture struct {
	userRepo *mocks.MockUserRepo
	svc      service.AuthService

	userID uuid.UUID
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		userRepo: new(mocks.MockUserRepo),
		userID:   uuid.New(),
	}
	f.svc = service.NewAuthService(f.userRepo, config.JWTConfig{
		Secret:             "test-secret",
		Issuer:             "crbill-test",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
	})
	return f
}

func (f *authFixture) user(password string, active bool) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:           f.userID,
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     active,
	}
}

func TestAuthLogin(t *testing.T) {
	f := newAuthFixture(t)

	f.userRepo.On("GetByEmail", mock.Anything, "admin@example.com").
		Return(f.user("correct-horse", true), nil)

	pair, err := f.svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := f.svc.ValidateToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, f.userID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	f.userRepo.On("GetByEmail", mock.Anything, "admin@example.com").
		Return(f.user("correct-horse", true), nil)

	_, err := f.svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@example.com",
		Password: "battery-staple",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	f.userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, domain.ErrNotFound)

	_, err := f.svc.Login(context.Background(), service.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "unknown email must not be distinguishable")
}

func TestAuthLoginInactiveUser(t *testing.T) {
	f := newAuthFixture(t)

	f.userRepo.On("GetByEmail", mock.Anything, "admin@example.com").
		Return(f.user("correct-horse", false), nil)

	_, err := f.svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthRefresh(t *testing.T) {
	f := newAuthFixture(t)

	f.userRepo.On("GetByEmail", mock.Anything, "admin@example.com").
		Return(f.user("correct-horse", true), nil)
	f.userRepo.On("GetByID", mock.Anything, f.userID).
		Return(f.user("correct-horse", true), nil)

	pair, err := f.svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	fresh, err := f.svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
}

func TestAuthRefreshRejectsAccessToken(t *testing.T) {
	f := newAuthFixture(t)

	f.userRepo.On("GetByEmail", mock.Anything, "admin@example.com").
		Return(f.user("correct-horse", true), nil)

	pair, err := f.svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	_, err = f.svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthValidateRejectsRefreshToken(t *testing.T) {
	f := newAuthFixture(t)

	f.userRepo.On("GetByEmail", mock.Anything, "admin@example.com").
		Return(f.user("correct-horse", true), nil)

	pair, err := f.svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	_, err = f.svc.ValidateToken(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthValidateRejectsGarbage(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestAuthChangePassword(t *testing.T) {
	f := newAuthFixture(t)

	f.userRepo.On("GetByID", mock.Anything, f.userID).
		Return(f.user("correct-horse", true), nil)
	f.userRepo.On("UpdatePassword", mock.Anything, f.userID, mock.Anything).Return(nil)

	err := f.svc.ChangePassword(context.Background(), f.userID, service.ChangePasswordInput{
		CurrentPassword: "correct-horse",
		NewPassword:     "battery-staple",
	})
	assert.NoError(t, err)

	newHash := f.userRepo.Calls[1].Arguments.String(2)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("battery-staple")))
}

func TestAuthChangePasswordWrongCurrent(t *testing.T) {
	f := newAuthFixture(t)

	f.userRepo.On("GetByID", mock.Anything, f.userID).
		Return(f.user("correct-horse", true), nil)

	err := f.svc.ChangePassword(context.Background(), f.userID, service.ChangePasswordInput{
		CurrentPassword: "wrong-guess",
		NewPassword:     "battery-staple",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	f.userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}
