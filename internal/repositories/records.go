package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shreyas-k21/passvault/internal/models"
	"github.com/shreyas-k21/passvault/internal/vault"
	"gorm.io/gorm"
)

// Compile-time interface checks
var (
	_ vault.PasswordStore = (*PasswordRepository)(nil)
	_ vault.NoteStore     = (*NoteRepository)(nil)
)

// PasswordRepository stores password entries. Every query carries the
// owner_id filter, so a foreign id is indistinguishable from a missing one.
type PasswordRepository struct {
	db *gorm.DB
}

func NewPasswordRepository(db *gorm.DB) *PasswordRepository {
	return &PasswordRepository{db: db}
}

func (r *PasswordRepository) Create(ctx context.Context, entry *models.PasswordEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PasswordRepository) GetByOwner(ctx context.Context, ownerID, id uuid.UUID) (*models.PasswordEntry, error) {
	var entry models.PasswordEntry
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vault.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *PasswordRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.PasswordEntry, error) {
	entries := []models.PasswordEntry{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PasswordRepository) Update(ctx context.Context, entry *models.PasswordEntry) error {
	entry.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.PasswordEntry{}).
		Where("id = ? AND owner_id = ?", entry.ID, entry.OwnerID).
		Updates(map[string]interface{}{
			"title":       entry.Title,
			"secret":      entry.Secret,
			"url":         entry.URL,
			"description": entry.Description,
			"updated_at":  entry.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return vault.ErrNotFound
	}
	return nil
}

func (r *PasswordRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.PasswordEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return vault.ErrNotFound
	}
	return nil
}

// NoteRepository stores notes, owner-scoped the same way.
type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *NoteRepository) GetByOwner(ctx context.Context, ownerID, id uuid.UUID) (*models.Note, error) {
	var note models.Note
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vault.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Note, error) {
	notes := []models.Note{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NoteRepository) Update(ctx context.Context, note *models.Note) error {
	note.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Note{}).
		Where("id = ? AND owner_id = ?", note.ID, note.OwnerID).
		Updates(map[string]interface{}{
			"title":      note.Title,
			"content":    note.Content,
			"updated_at": note.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return vault.ErrNotFound
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return vault.ErrNotFound
	}
	return nil
}
