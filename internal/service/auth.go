package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ldelaney/authsvc/internal/domain"
	"github.com/ldelaney/authsvc/internal/password"
	"github.com/ldelaney/authsvc/internal/token"
)

// AuthService orchestrates registration, login, and token resolution.
type AuthService struct {
	users  domain.UserRepository
	hasher *password.Hasher
	tokens *token.Issuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, hasher *password.Hasher, tokens *token.Issuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a new user account and issues a session token for it.
// Email uniqueness is enforced by the store's constraint, so a race between
// two concurrent registrations resolves to one success and one
// ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, email, pw, name string) (*domain.User, string, error) {
	if email == "" || pw == "" || name == "" {
		return nil, "", fmt.Errorf("%w: email, password, and name are required", domain.ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(pw)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, "", domain.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, tok, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password both return ErrInvalidCredentials with no further detail, so
// callers cannot tell which half of the pair was wrong.
func (s *AuthService) Login(ctx context.Context, email, pw string) (*domain.User, string, error) {
	if email == "" || pw == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, pw); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, tok, nil
}

// ResolveToken verifies a session token and loads the user it was issued for.
func (s *AuthService) ResolveToken(ctx context.Context, tok string) (*domain.User, error) {
	userID, err := s.tokens.Verify(tok)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
