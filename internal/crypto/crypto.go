package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Encryption parameters for stored secrets. The IV is 16 bytes (not GCM's
// default 12) so envelopes stay compatible with values written by earlier
// deployments of this vault.
const (
	ivLength  = 16
	tagLength = 16
	keyLength = 32

	kdfSalt       = "salt"
	kdfIterations = 100000
)

// ErrTampered is returned when an envelope fails authentication: wrong key,
// flipped bits, truncation or a malformed structure. No plaintext is ever
// returned alongside it.
var ErrTampered = errors.New("encrypted value is tampered or corrupt")

// DeriveKey stretches the configured master secret into an AES-256 key.
// The salt and iteration count are fixed so the same secret always yields the
// same key across restarts. Called once at startup; the result is passed
// explicitly to Encrypt/Decrypt.
func DeriveKey(masterSecret string) []byte {
	return pbkdf2.Key([]byte(masterSecret), []byte(kdfSalt), kdfIterations, keyLength, sha256.New)
}

// Encrypt seals plaintext with AES-256-GCM under a fresh random IV and returns
// the envelope "{iv_hex}:{ciphertext_hex}:{tag_hex}". Two calls with the same
// plaintext produce different envelopes. An empty string encrypts to an empty
// string.
func Encrypt(plaintext string, key []byte) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	// Seal appends the auth tag to the ciphertext; the envelope keeps them as
	// separate segments.
	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-tagLength]
	tag := sealed[len(sealed)-tagLength:]

	return fmt.Sprintf("%s:%s:%s",
		hex.EncodeToString(iv),
		hex.EncodeToString(ciphertext),
		hex.EncodeToString(tag),
	), nil
}

// Decrypt opens an envelope produced by Encrypt and returns the plaintext.
// The auth tag is verified before anything is returned; any mismatch fails
// with ErrTampered.
//
// A value without the ":" envelope marker predates encryption and is returned
// unchanged (legacy plaintext passthrough).
func Decrypt(value string, key []byte) (string, error) {
	if !strings.Contains(value, ":") {
		return value, nil
	}

	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return "", ErrTampered
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != ivLength {
		return "", ErrTampered
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", ErrTampered
	}
	tag, err := hex.DecodeString(parts[2])
	if err != nil || len(tag) != tagLength {
		return "", ErrTampered
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", ErrTampered
	}
	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLength)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gcm: %w", err)
	}
	return gcm, nil
}
