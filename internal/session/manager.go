package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shreyas-k21/passvault/internal/models"
	"github.com/shreyas-k21/passvault/internal/utils"
)

const tokenBytes = 32

// Manager is the session gate. It hands out opaque tokens, resolves them
// against the durable store and enforces expiry on every read.
//
// Expiry is a sliding window: resolving a session whose remaining lifetime has
// dropped below half the TTL pushes the expiry forward by a full TTL, so
// active users stay logged in without rewriting the record on every request.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Establish creates a durable session for the given user and returns the
// opaque token the client must present on subsequent requests.
func (m *Manager) Establish(ctx context.Context, userID uuid.UUID, username string) (string, error) {
	token, err := utils.GenerateSecureToken(tokenBytes)
	if err != nil {
		return "", fmt.Errorf("failed to create session token: %w", err)
	}

	now := time.Now()
	session := &models.Session{
		ID:        token,
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, session); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return token, nil
}

// Resolve looks the token up in the store. A missing record and a record past
// its expiry both fail with ErrNotFound; the expired record may still exist
// physically, it is just never honored.
func (m *Manager) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	session, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if now.After(session.ExpiresAt) {
		return nil, ErrNotFound
	}

	if session.ExpiresAt.Sub(now) < m.ttl/2 {
		session.ExpiresAt = now.Add(m.ttl)
		// Renewal is best-effort; a failed touch must not log the user out.
		_ = m.store.Save(ctx, session)
	}

	return &Identity{UserID: session.UserID, Username: session.Username}, nil
}

// Destroy invalidates the session. Destroying an absent or already-destroyed
// session is not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, token)
}

// Sweep removes expired session records from the store.
func (m *Manager) Sweep(ctx context.Context) error {
	return m.store.DeleteExpired(ctx)
}
