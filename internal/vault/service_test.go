package vault

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shreyas-k21/passvault/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *MemoryStore) {
	store := NewMemoryStore()
	key := crypto.DeriveKey("test-master-secret")
	return NewService(store, store.Notes(), key), store
}

func TestCreatePassword_StoreNeverHoldsPlaintext(t *testing.T) {
	svc, store := newTestService()
	owner := uuid.New()

	entry, err := svc.CreatePassword(context.Background(), owner, PasswordInput{
		Title:    "email",
		Password: "secret123",
	})
	require.NoError(t, err)

	// The caller gets the plaintext back.
	assert.Equal(t, "secret123", entry.Secret)

	// The store holds only the envelope.
	stored := store.passwords[entry.ID]
	assert.NotEqual(t, "secret123", stored.Secret)
	assert.NotContains(t, stored.Secret, "secret123")
	assert.Len(t, strings.Split(stored.Secret, ":"), 3)
}

func TestGetPassword_DecryptsTransparently(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()

	created, err := svc.CreatePassword(context.Background(), owner, PasswordInput{
		Title:       "email",
		Password:    "secret123",
		URL:         "https://mail.example.com",
		Description: "personal mailbox",
	})
	require.NoError(t, err)

	got, err := svc.GetPassword(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret123", got.Secret)
	assert.Equal(t, "email", got.Title)
	assert.Equal(t, "https://mail.example.com", got.URL)
}

func TestGetPassword_ForeignRecordIsNotFound(t *testing.T) {
	svc, _ := newTestService()
	alice, bob := uuid.New(), uuid.New()

	created, err := svc.CreatePassword(context.Background(), alice, PasswordInput{
		Title:    "email",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Bob asking for Alice's record by id gets NotFound, not Forbidden:
	// the response must not confirm the record exists.
	_, err = svc.GetPassword(context.Background(), bob, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.DeletePassword(context.Background(), bob, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdatePassword(context.Background(), bob, created.ID, PasswordInput{
		Title:    "hijacked",
		Password: "x",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePassword_ReencryptsUnderFreshIV(t *testing.T) {
	svc, store := newTestService()
	owner := uuid.New()

	created, err := svc.CreatePassword(context.Background(), owner, PasswordInput{
		Title:    "email",
		Password: "secret123",
	})
	require.NoError(t, err)
	firstEnvelope := store.passwords[created.ID].Secret

	updated, err := svc.UpdatePassword(context.Background(), owner, created.ID, PasswordInput{
		Title:    "email",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "secret123", updated.Secret)

	// Same plaintext, different envelope.
	secondEnvelope := store.passwords[created.ID].Secret
	assert.NotEqual(t, firstEnvelope, secondEnvelope)

	got, err := svc.GetPassword(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret123", got.Secret)
}

func TestListPasswords_DegradesPerRecordOnCorruption(t *testing.T) {
	svc, store := newTestService()
	owner := uuid.New()

	good, err := svc.CreatePassword(context.Background(), owner, PasswordInput{
		Title:    "good",
		Password: "goodsecret",
	})
	require.NoError(t, err)
	bad, err := svc.CreatePassword(context.Background(), owner, PasswordInput{
		Title:    "bad",
		Password: "badsecret",
	})
	require.NoError(t, err)

	// Corrupt the stored envelope of one record.
	corrupted := store.passwords[bad.ID]
	corrupted.Secret = "00112233:deadbeef:00112233445566778899aabbccddeeff"
	store.passwords[bad.ID] = corrupted

	entries, err := svc.ListPasswords(context.Background(), owner)
	require.NoError(t, err, "one corrupt record must not abort the list")
	require.Len(t, entries, 2)

	byID := map[uuid.UUID]string{}
	for _, e := range entries {
		byID[e.ID] = e.Secret
	}
	assert.Equal(t, "goodsecret", byID[good.ID])
	assert.Equal(t, "", byID[bad.ID], "corrupt secret is skipped, not leaked")
}

func TestGetPassword_SingleCorruptRecordFailsClosed(t *testing.T) {
	svc, store := newTestService()
	owner := uuid.New()

	created, err := svc.CreatePassword(context.Background(), owner, PasswordInput{
		Title:    "email",
		Password: "secret123",
	})
	require.NoError(t, err)

	corrupted := store.passwords[created.ID]
	corrupted.Secret = "00112233:deadbeef:00112233445566778899aabbccddeeff"
	store.passwords[created.ID] = corrupted

	_, err = svc.GetPassword(context.Background(), owner, created.ID)
	assert.ErrorIs(t, err, crypto.ErrTampered)
}

func TestGetPassword_LegacyPlaintextRecord(t *testing.T) {
	svc, store := newTestService()
	owner := uuid.New()

	created, err := svc.CreatePassword(context.Background(), owner, PasswordInput{
		Title:    "migrated",
		Password: "placeholder",
	})
	require.NoError(t, err)

	// Simulate a record written before encryption was introduced.
	legacy := store.passwords[created.ID]
	legacy.Secret = "oldplainvalue"
	store.passwords[created.ID] = legacy

	got, err := svc.GetPassword(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "oldplainvalue", got.Secret)
}

func TestListPasswords_OrderAndScoping(t *testing.T) {
	svc, _ := newTestService()
	alice, bob := uuid.New(), uuid.New()

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.CreatePassword(context.Background(), alice, PasswordInput{
			Title:    title,
			Password: "secret123",
		})
		require.NoError(t, err)
	}
	_, err := svc.CreatePassword(context.Background(), bob, PasswordInput{
		Title:    "bobs",
		Password: "secret123",
	})
	require.NoError(t, err)

	entries, err := svc.ListPasswords(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, alice, e.OwnerID)
		assert.Equal(t, "secret123", e.Secret)
	}
}

func TestPasswordInput_Validation(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()

	tests := []struct {
		name string
		in   PasswordInput
	}{
		{"missing title", PasswordInput{Password: "secret123"}},
		{"missing password", PasswordInput{Title: "email"}},
		{"title too long", PasswordInput{Title: strings.Repeat("t", 101), Password: "x"}},
		{"url too long", PasswordInput{Title: "email", Password: "x", URL: strings.Repeat("u", 501)}},
		{"description too long", PasswordInput{Title: "email", Password: "x", Description: strings.Repeat("d", 501)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePassword(context.Background(), owner, tt.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestNotes_StoredAsPlaintext(t *testing.T) {
	svc, store := newTestService()
	owner := uuid.New()

	note, err := svc.CreateNote(context.Background(), owner, NoteInput{
		Title:   "groceries",
		Content: "milk, eggs, bread",
	})
	require.NoError(t, err)

	// Notes sit outside the codec boundary.
	assert.Equal(t, "milk, eggs, bread", store.notes[note.ID].Content)

	got, err := svc.GetNote(context.Background(), owner, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "milk, eggs, bread", got.Content)
}

func TestNotes_CRUDAndScoping(t *testing.T) {
	svc, _ := newTestService()
	alice, bob := uuid.New(), uuid.New()

	note, err := svc.CreateNote(context.Background(), alice, NoteInput{
		Title:   "groceries",
		Content: "milk",
	})
	require.NoError(t, err)

	_, err = svc.GetNote(context.Background(), bob, note.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.UpdateNote(context.Background(), alice, note.ID, NoteInput{
		Title:   "groceries",
		Content: "milk and eggs",
	})
	require.NoError(t, err)
	assert.Equal(t, "milk and eggs", updated.Content)

	notes, err := svc.ListNotes(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	require.NoError(t, svc.DeleteNote(context.Background(), alice, note.ID))
	_, err = svc.GetNote(context.Background(), alice, note.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateNote(context.Background(), alice, NoteInput{Title: "", Content: "x"})
	assert.ErrorIs(t, err, ErrValidation)
}
