package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstablishAndResolve(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, 24*time.Hour)

	userID := uuid.New()
	token, err := mgr.Establish(context.Background(), userID, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := mgr.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "alice", identity.Username)
}

func TestEstablish_TokensAreOpaqueAndUnique(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), 24*time.Hour)

	userID := uuid.New()
	token1, err := mgr.Establish(context.Background(), userID, "alice")
	require.NoError(t, err)
	token2, err := mgr.Establish(context.Background(), userID, "alice")
	require.NoError(t, err)

	// Multi-device login: both sessions resolve independently.
	assert.NotEqual(t, token1, token2)
	assert.NotContains(t, token1, "alice")
	assert.NotContains(t, token1, userID.String())

	_, err = mgr.Resolve(context.Background(), token1)
	assert.NoError(t, err)
	_, err = mgr.Resolve(context.Background(), token2)
	assert.NoError(t, err)
}

func TestResolve_UnknownToken(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), 24*time.Hour)

	_, err := mgr.Resolve(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = mgr.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_ExpiredSessionStillOnDisk(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, 24*time.Hour)

	token, err := mgr.Establish(context.Background(), uuid.New(), "alice")
	require.NoError(t, err)

	// Push the stored expiry into the past without deleting the record:
	// expiry must be enforced on read, not only by the cleanup sweep.
	session, err := store.Get(context.Background(), token)
	require.NoError(t, err)
	session.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, store.Save(context.Background(), session))

	_, err = mgr.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrNotFound)

	// The record physically remains until swept.
	_, err = store.Get(context.Background(), token)
	assert.NoError(t, err)
}

func TestResolve_SlidingRenewal(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, 24*time.Hour)

	token, err := mgr.Establish(context.Background(), uuid.New(), "alice")
	require.NoError(t, err)

	// Move the session into the second half of its lifetime.
	session, err := store.Get(context.Background(), token)
	require.NoError(t, err)
	staleExpiry := time.Now().Add(time.Hour)
	session.ExpiresAt = staleExpiry
	require.NoError(t, store.Save(context.Background(), session))

	_, err = mgr.Resolve(context.Background(), token)
	require.NoError(t, err)

	renewed, err := store.Get(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, renewed.ExpiresAt.After(staleExpiry), "resolve should slide the expiry forward")
}

func TestResolve_NoRenewalWhileFresh(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, 24*time.Hour)

	token, err := mgr.Establish(context.Background(), uuid.New(), "alice")
	require.NoError(t, err)

	before, err := store.Get(context.Background(), token)
	require.NoError(t, err)

	_, err = mgr.Resolve(context.Background(), token)
	require.NoError(t, err)

	after, err := store.Get(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, before.ExpiresAt, after.ExpiresAt)
}

func TestDestroy_Idempotent(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), 24*time.Hour)

	token, err := mgr.Establish(context.Background(), uuid.New(), "alice")
	require.NoError(t, err)

	require.NoError(t, mgr.Destroy(context.Background(), token))

	_, err = mgr.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrNotFound)

	// Destroying again is not an error.
	assert.NoError(t, mgr.Destroy(context.Background(), token))
	assert.NoError(t, mgr.Destroy(context.Background(), "never-existed"))
}

func TestSweep_RemovesOnlyExpired(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, 24*time.Hour)

	live, err := mgr.Establish(context.Background(), uuid.New(), "alice")
	require.NoError(t, err)
	dead, err := mgr.Establish(context.Background(), uuid.New(), "bob")
	require.NoError(t, err)

	session, err := store.Get(context.Background(), dead)
	require.NoError(t, err)
	session.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, store.Save(context.Background(), session))

	require.NoError(t, mgr.Sweep(context.Background()))

	_, err = store.Get(context.Background(), live)
	assert.NoError(t, err)
	_, err = store.Get(context.Background(), dead)
	assert.ErrorIs(t, err, ErrNotFound)
}
