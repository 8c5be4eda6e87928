// Package auth handles user registration and login for the API.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/domain"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/internal/domain/repository"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID, role string) (string, error)
}

// UseCase registers users and exchanges credentials for bearer tokens.
type UseCase struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

// NewUseCase builds the auth service.
func NewUseCase(userRepo repository.UserRepository, tokens TokenIssuer) *UseCase {
	return &UseCase{userRepo: userRepo, tokens: tokens}
}

const minPasswordLen = 8

// Register creates a user with a bcrypt-hashed password. Email is the
// unique login key.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleStaff
	}
	if role != entity.RoleAdmin && role != entity.RoleStaff {
		return nil, fmt.Errorf("%w: role must be %q or %q", domain.ErrInvalidInput, entity.RoleAdmin, entity.RoleStaff)
	}

	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return userResponse(user), nil
}

// Login verifies credentials and returns a signed token. Wrong email and
// wrong password are indistinguishable to the caller.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := uc.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *userResponse(user)}, nil
}

func userResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
