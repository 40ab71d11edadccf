package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shreyas-k21/passvault/internal/models"
)

// ErrNotFound covers a missing session. An expired session is reported the
// same way by the manager: to callers it is simply absent.
var ErrNotFound = errors.New("session not found")

// Identity is the authenticated principal attached to a request. Record
// operations scope every query by UserID.
type Identity struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
}

// Store is a durable session backend. Sessions survive server restarts; the
// expiry decision belongs to the Manager, not the store.
type Store interface {
	// Save inserts the session or overwrites an existing one with the same ID.
	Save(ctx context.Context, session *models.Session) error
	// Get fails with ErrNotFound when no record exists. It may return an
	// expired record; the caller decides what expiry means.
	Get(ctx context.Context, id string) (*models.Session, error)
	// Delete is idempotent: removing an absent session is not an error.
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions whose expiry has passed. Backends with
	// native TTL eviction may treat this as a no-op.
	DeleteExpired(ctx context.Context) error
	Close() error
}
