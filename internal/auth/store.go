package auth

import (
	"context"

	"github.com/shreyas-k21/passvault/internal/models"
)

type UserStore interface {
	// Create persists a new user and fails with ErrDuplicateUsername when the
	// username is already registered.
	Create(ctx context.Context, user *models.User) error
	// GetByUsername fails with ErrUserNotFound when no such user exists.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
