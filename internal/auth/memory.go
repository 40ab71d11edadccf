package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shreyas-k21/passvault/internal/models"
)

// Compile-time interface check
var _ UserStore = (*MemoryStore)(nil)

// MemoryStore keeps users in a map. Used by tests and the in-memory dev mode.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]models.User // keyed by username
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]models.User)}
}

func (s *MemoryStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return ErrDuplicateUsername
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.Username] = *user
	return nil
}

func (s *MemoryStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
