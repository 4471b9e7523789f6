package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalilcare/provider-directory/internal/auth"
	"github.com/dalilcare/provider-directory/internal/models"
	"github.com/dalilcare/provider-directory/internal/repository"
)

// ErrInvalidCredentials is returned for unknown email or wrong password
var ErrInvalidCredentials = fmt.Errorf("invalid email or password")

// RegisterRequest describes a new account
type RegisterRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	FullName string      `json:"full_name,omitempty"`
	Role     models.Role `json:"role,omitempty"`
}

// AuthResponse carries the signed token and the account it belongs to
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AccountService handles registration and login
type AccountService struct {
	userRepo *repository.UserRepository
	issuer   *auth.TokenIssuer
}

// NewAccountService creates a new account service
func NewAccountService(userRepo *repository.UserRepository, issuer *auth.TokenIssuer) *AccountService {
	return &AccountService{userRepo: userRepo, issuer: issuer}
}

// Register creates an account and returns a signed token. Accounts may be
// plain users or providers; admin accounts are provisioned out of band.
func (s *AccountService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	role := req.Role
	switch role {
	case "":
		role = models.RoleUser
	case models.RoleUser, models.RoleProvider:
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("an account with this email already exists")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and returns a signed token
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}
