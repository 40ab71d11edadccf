package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() *Service {
	return NewService(NewMemoryStore(), Policy{MinLength: 8, RequireComplexity: true})
}

func TestRegister_Success(t *testing.T) {
	svc := newTestService()

	user, err := svc.Register(context.Background(), "alice", "Str0ng!pass")
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.ID)

	// The stored hash must verify against the plaintext but never equal it.
	assert.NotEqual(t, "Str0ng!pass", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Str0ng!pass")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newTestService()

	_, err := svc.Register(context.Background(), "alice", "Str0ng!pass")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "An0ther!pass")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestRegister_UsernameValidation(t *testing.T) {
	svc := newTestService()

	for _, username := range []string{"", "ab", "  ", strings.Repeat("a", 40)} {
		_, err := svc.Register(context.Background(), username, "Str0ng!pass")
		assert.ErrorIs(t, err, ErrValidation, "username %q", username)
	}
}

func TestRegister_WeakPasswords(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1!x"},
		{"no uppercase", "str0ng!pass"},
		{"no lowercase", "STR0NG!PASS"},
		{"no digit", "Strong!pass"},
		{"no symbol", "Str0ngpass1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), "alice", tt.password)
			assert.ErrorIs(t, err, ErrWeakPassword)
		})
	}
}

func TestRegister_LaxPolicy(t *testing.T) {
	svc := NewService(NewMemoryStore(), Policy{MinLength: 6})

	_, err := svc.Register(context.Background(), "alice", "simple")
	assert.NoError(t, err)

	_, err = svc.Register(context.Background(), "bob", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestAuthenticate_Success(t *testing.T) {
	svc := newTestService()

	registered, err := svc.Register(context.Background(), "alice", "Str0ng!pass")
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "alice", "Str0ng!pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthenticate_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	svc := newTestService()

	_, err := svc.Register(context.Background(), "alice", "Str0ng!pass")
	require.NoError(t, err)

	_, wrongPassErr := svc.Authenticate(context.Background(), "alice", "wrong")
	_, unknownUserErr := svc.Authenticate(context.Background(), "nobody", "x")

	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUserErr, ErrInvalidCredentials)
	assert.Equal(t, wrongPassErr.Error(), unknownUserErr.Error())
}

func TestAuthenticate_EmptyInput(t *testing.T) {
	svc := newTestService()

	_, err := svc.Authenticate(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
