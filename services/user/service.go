// File: urbanserve/services/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"urbanserve/database/repository"
	"urbanserve/models"
	"urbanserve/utils"
)

// ErrInvalidCredentials is returned on any login failure. Wrong email and
// wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid email or password")

const tokenTTL = 24 * time.Hour

// ValidationError is a client-fault rejection with a human-readable reason.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// RegisterInput holds a signup request.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

// AuthResult pairs the persisted user with a fresh bearer token.
type AuthResult struct {
	User  *models.User
	Token string
}

// UserService handles account registration and authentication.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// DefaultUserService implements UserService on the user repository.
type DefaultUserService struct {
	UserRepo repository.UserRepository
}

// Register creates the account with a hashed password and signs a token.
func (s *DefaultUserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if !models.IsValidRole(input.Role) {
		return nil, ValidationError{Reason: "Role must be one of: customer, worker, tutor"}
	}
	if _, err := s.UserRepo.GetByEmail(input.Email); err == nil {
		return nil, ValidationError{Reason: "Email already registered"}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.UserRepo.Create(u); err != nil {
		return nil, err
	}

	return s.issueToken(u)
}

// Login verifies credentials and signs a token.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.UserRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(u)
}

// GetByID fetches the account for the authenticated-user endpoint.
func (s *DefaultUserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.UserRepo.GetByID(id)
}

func (s *DefaultUserService) issueToken(u *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(fmt.Sprintf("%d", u.ID), u.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &AuthResult{User: u, Token: token}, nil
}
