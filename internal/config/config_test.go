package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("ENV_FILE", "testdata-no-such-file.env")
	t.Setenv("MASTER_SECRET", "test-master-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/passvault")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, SessionStoreDatabase, cfg.SessionStore)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 8, cfg.PasswordMinLength)
	assert.True(t, cfg.PasswordComplexity)
}

func TestLoad_MissingMasterSecretIsFatal(t *testing.T) {
	t.Setenv("ENV_FILE", "testdata-no-such-file.env")
	t.Setenv("MASTER_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/passvault")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MASTER_SECRET")
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("ENV_FILE", "testdata-no-such-file.env")
	t.Setenv("MASTER_SECRET", "test-master-secret")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)

	// The in-memory dev store does not need a database.
	t.Setenv("STORE", StoreMemory)
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoad_PolicyOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PASSWORD_MIN_LENGTH", "6")
	t.Setenv("PASSWORD_COMPLEXITY", "false")
	t.Setenv("SESSION_TTL", "1h30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.PasswordMinLength)
	assert.False(t, cfg.PasswordComplexity)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SESSION_TTL", "tomorrow"},
		{"SESSION_TTL", "-1h"},
		{"PASSWORD_MIN_LENGTH", "zero"},
		{"PASSWORD_MIN_LENGTH", "0"},
		{"PASSWORD_COMPLEXITY", "maybe"},
		{"SESSION_STORE", "mongo"},
		{"STORE", "sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
