package vault

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shreyas-k21/passvault/internal/models"
)

var (
	// ErrNotFound covers both a record that does not exist and a record owned
	// by someone else. The two cases are indistinguishable on purpose.
	ErrNotFound = errors.New("record not found")

	ErrValidation = errors.New("invalid input")
)

// PasswordStore persists password entries. Every lookup and mutation is scoped
// by owner; an id belonging to another user behaves as if it does not exist.
// Stores deal in stored (encrypted) values only; the codec lives in Service.
type PasswordStore interface {
	Create(ctx context.Context, entry *models.PasswordEntry) error
	GetByOwner(ctx context.Context, ownerID, id uuid.UUID) (*models.PasswordEntry, error)
	// ListByOwner returns entries ordered by creation time, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.PasswordEntry, error)
	Update(ctx context.Context, entry *models.PasswordEntry) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// NoteStore persists notes, owner-scoped like PasswordStore.
type NoteStore interface {
	Create(ctx context.Context, note *models.Note) error
	GetByOwner(ctx context.Context, ownerID, id uuid.UUID) (*models.Note, error)
	// ListByOwner returns notes ordered by last update, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
