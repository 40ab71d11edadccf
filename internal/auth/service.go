package auth

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/shreyas-k21/passvault/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 30

	passwordSymbols = `!@#$%^&*(),.?":{}|<>`
)

// Policy controls what Register accepts as a password.
type Policy struct {
	MinLength int
	// RequireComplexity demands at least one uppercase letter, one lowercase
	// letter, one digit and one symbol.
	RequireComplexity bool
}

// Service owns user identity: registration and credential verification.
// Plaintext passwords are hashed with bcrypt before they reach the store and
// are never persisted or logged.
type Service struct {
	users  UserStore
	policy Policy
}

func NewService(users UserStore, policy Policy) *Service {
	return &Service{users: users, policy: policy}
}

// Register creates a new user. The returned user carries the public identity
// only as far as callers are concerned: PasswordHash is excluded from JSON
// serialization and must not be copied into responses.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := s.validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair. An unknown username and a
// wrong password fail with the same ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func validateUsername(username string) error {
	if len(username) < usernameMinLength || len(username) > usernameMaxLength {
		return fmt.Errorf("%w: username must be between %d and %d characters",
			ErrValidation, usernameMinLength, usernameMaxLength)
	}
	return nil
}

func (s *Service) validatePassword(password string) error {
	if len(password) < s.policy.MinLength {
		return fmt.Errorf("%w: password must be at least %d characters",
			ErrWeakPassword, s.policy.MinLength)
	}
	if !s.policy.RequireComplexity {
		return nil
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("%w: password must contain at least one uppercase letter", ErrWeakPassword)
	case !hasLower:
		return fmt.Errorf("%w: password must contain at least one lowercase letter", ErrWeakPassword)
	case !hasDigit:
		return fmt.Errorf("%w: password must contain at least one digit", ErrWeakPassword)
	case !strings.ContainsAny(password, passwordSymbols):
		return fmt.Errorf("%w: password must contain at least one symbol", ErrWeakPassword)
	}
	return nil
}
