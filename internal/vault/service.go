package vault

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shreyas-k21/passvault/internal/crypto"
	"github.com/shreyas-k21/passvault/internal/models"
)

const (
	titleMaxLength       = 100
	urlMaxLength         = 500
	descriptionMaxLength = 500
	contentMaxLength     = 10000
)

type PasswordInput struct {
	Title       string `json:"title"`
	Password    string `json:"password"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Service is the single choke point for record access. Password secrets are
// encrypted here before anything reaches a store and decrypted here after
// every read, so no call site can forget either step. Notes pass through
// untouched; the codec boundary is the secret field, not the storage layer.
type Service struct {
	passwords PasswordStore
	notes     NoteStore
	key       []byte
}

// NewService wires the stores to the derived master key. The key is computed
// once at startup and passed in explicitly.
func NewService(passwords PasswordStore, notes NoteStore, key []byte) *Service {
	return &Service{passwords: passwords, notes: notes, key: key}
}

func (s *Service) CreatePassword(ctx context.Context, ownerID uuid.UUID, in PasswordInput) (*models.PasswordEntry, error) {
	if err := validatePasswordInput(&in); err != nil {
		return nil, err
	}

	secret, err := crypto.Encrypt(in.Password, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt secret: %w", err)
	}

	entry := &models.PasswordEntry{
		OwnerID:     ownerID,
		Title:       in.Title,
		Secret:      secret,
		URL:         in.URL,
		Description: in.Description,
	}
	if err := s.passwords.Create(ctx, entry); err != nil {
		return nil, err
	}

	// The response carries the plaintext the caller just supplied, never the
	// stored envelope.
	entry.Secret = in.Password
	return entry, nil
}

func (s *Service) GetPassword(ctx context.Context, ownerID, id uuid.UUID) (*models.PasswordEntry, error) {
	entry, err := s.passwords.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	// A single-record fetch fails closed on a bad envelope.
	plaintext, err := crypto.Decrypt(entry.Secret, s.key)
	if err != nil {
		return nil, err
	}
	entry.Secret = plaintext
	return entry, nil
}

func (s *Service) ListPasswords(ctx context.Context, ownerID uuid.UUID) ([]models.PasswordEntry, error) {
	entries, err := s.passwords.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		plaintext, err := crypto.Decrypt(entries[i].Secret, s.key)
		if err != nil {
			// One undecryptable record must not take the whole list down.
			// Blank the secret and keep going; the rest may be fine.
			log.Printf("Skipping secret of password entry %s: %v", entries[i].ID, err)
			entries[i].Secret = ""
			continue
		}
		entries[i].Secret = plaintext
	}
	return entries, nil
}

func (s *Service) UpdatePassword(ctx context.Context, ownerID, id uuid.UUID, in PasswordInput) (*models.PasswordEntry, error) {
	if err := validatePasswordInput(&in); err != nil {
		return nil, err
	}

	entry, err := s.passwords.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	// The secret is re-encrypted under a fresh IV on every update.
	secret, err := crypto.Encrypt(in.Password, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt secret: %w", err)
	}

	entry.Title = in.Title
	entry.Secret = secret
	entry.URL = in.URL
	entry.Description = in.Description
	if err := s.passwords.Update(ctx, entry); err != nil {
		return nil, err
	}

	entry.Secret = in.Password
	return entry, nil
}

func (s *Service) DeletePassword(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.passwords.Delete(ctx, ownerID, id)
}

func (s *Service) CreateNote(ctx context.Context, ownerID uuid.UUID, in NoteInput) (*models.Note, error) {
	if err := validateNoteInput(&in); err != nil {
		return nil, err
	}

	note := &models.Note{
		OwnerID: ownerID,
		Title:   in.Title,
		Content: in.Content,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) GetNote(ctx context.Context, ownerID, id uuid.UUID) (*models.Note, error) {
	return s.notes.GetByOwner(ctx, ownerID, id)
}

func (s *Service) ListNotes(ctx context.Context, ownerID uuid.UUID) ([]models.Note, error) {
	return s.notes.ListByOwner(ctx, ownerID)
}

func (s *Service) UpdateNote(ctx context.Context, ownerID, id uuid.UUID, in NoteInput) (*models.Note, error) {
	if err := validateNoteInput(&in); err != nil {
		return nil, err
	}

	note, err := s.notes.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	note.Title = in.Title
	note.Content = in.Content
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) DeleteNote(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.notes.Delete(ctx, ownerID, id)
}

func validatePasswordInput(in *PasswordInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	in.Description = strings.TrimSpace(in.Description)

	switch {
	case in.Title == "" || in.Password == "":
		return fmt.Errorf("%w: title and password are required", ErrValidation)
	case len(in.Title) > titleMaxLength:
		return fmt.Errorf("%w: title cannot exceed %d characters", ErrValidation, titleMaxLength)
	case len(in.URL) > urlMaxLength:
		return fmt.Errorf("%w: url cannot exceed %d characters", ErrValidation, urlMaxLength)
	case len(in.Description) > descriptionMaxLength:
		return fmt.Errorf("%w: description cannot exceed %d characters", ErrValidation, descriptionMaxLength)
	}
	return nil
}

func validateNoteInput(in *NoteInput) error {
	in.Title = strings.TrimSpace(in.Title)

	switch {
	case in.Title == "" || in.Content == "":
		return fmt.Errorf("%w: title and content are required", ErrValidation)
	case len(in.Title) > titleMaxLength:
		return fmt.Errorf("%w: title cannot exceed %d characters", ErrValidation, titleMaxLength)
	case len(in.Content) > contentMaxLength:
		return fmt.Errorf("%w: content cannot exceed %d characters", ErrValidation, contentMaxLength)
	}
	return nil
}
