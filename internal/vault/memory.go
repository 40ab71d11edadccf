package vault

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shreyas-k21/passvault/internal/models"
)

// Compile-time interface checks
var (
	_ PasswordStore = (*MemoryStore)(nil)
	_ NoteStore     = (*memoryNotes)(nil)
)

// MemoryStore keeps records in maps. Used by tests and the in-memory dev mode.
type MemoryStore struct {
	mu        sync.RWMutex
	passwords map[uuid.UUID]models.PasswordEntry
	notes     map[uuid.UUID]models.Note
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		passwords: make(map[uuid.UUID]models.PasswordEntry),
		notes:     make(map[uuid.UUID]models.Note),
	}
}

func (s *MemoryStore) Create(ctx context.Context, entry *models.PasswordEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entry.ID = uuid.New()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	s.passwords[entry.ID] = *entry
	return nil
}

func (s *MemoryStore) GetByOwner(ctx context.Context, ownerID, id uuid.UUID) (*models.PasswordEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.passwords[id]
	if !ok || entry.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return &entry, nil
}

func (s *MemoryStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.PasswordEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []models.PasswordEntry{}
	for _, entry := range s.passwords {
		if entry.OwnerID == ownerID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *MemoryStore) Update(ctx context.Context, entry *models.PasswordEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.passwords[entry.ID]
	if !ok || existing.OwnerID != entry.OwnerID {
		return ErrNotFound
	}
	entry.UpdatedAt = time.Now()
	s.passwords[entry.ID] = *entry
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.passwords[id]
	if !ok || entry.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.passwords, id)
	return nil
}

// Note store methods live on the same struct so one MemoryStore serves the
// whole vault in tests and dev mode. Method names would collide, so notes get
// a thin wrapper.

type memoryNotes struct {
	store *MemoryStore
}

// Notes returns the NoteStore view of this MemoryStore.
func (s *MemoryStore) Notes() NoteStore {
	return &memoryNotes{store: s}
}

func (n *memoryNotes) Create(ctx context.Context, note *models.Note) error {
	n.store.mu.Lock()
	defer n.store.mu.Unlock()

	now := time.Now()
	note.ID = uuid.New()
	note.CreatedAt = now
	note.UpdatedAt = now
	n.store.notes[note.ID] = *note
	return nil
}

func (n *memoryNotes) GetByOwner(ctx context.Context, ownerID, id uuid.UUID) (*models.Note, error) {
	n.store.mu.RLock()
	defer n.store.mu.RUnlock()

	note, ok := n.store.notes[id]
	if !ok || note.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return &note, nil
}

func (n *memoryNotes) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Note, error) {
	n.store.mu.RLock()
	defer n.store.mu.RUnlock()

	notes := []models.Note{}
	for _, note := range n.store.notes {
		if note.OwnerID == ownerID {
			notes = append(notes, note)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
	return notes, nil
}

func (n *memoryNotes) Update(ctx context.Context, note *models.Note) error {
	n.store.mu.Lock()
	defer n.store.mu.Unlock()

	existing, ok := n.store.notes[note.ID]
	if !ok || existing.OwnerID != note.OwnerID {
		return ErrNotFound
	}
	note.UpdatedAt = time.Now()
	n.store.notes[note.ID] = *note
	return nil
}

func (n *memoryNotes) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	n.store.mu.Lock()
	defer n.store.mu.Unlock()

	note, ok := n.store.notes[id]
	if !ok || note.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(n.store.notes, id)
	return nil
}
