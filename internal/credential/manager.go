// Package credential derives and verifies the authentication hash stored for
// a user. The raw password is never persisted; only the PBKDF2 output and its
// salt are, as base64 text.
package credential

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vitalkeeper/internal/cryptox"
)

// ErrMalformedCredential is returned by Verify when the stored hash or salt
// cannot be decoded. It indicates storage corruption, not a wrong password.
var ErrMalformedCredential = errors.New("malformed stored credential")

// Credential is the persisted authentication record of one enrolled password.
type Credential struct {
	PasswordHash string `json:"passwordHash"`
	PasswordSalt string `json:"passwordSalt"`
}

// Manager enrolls and verifies passwords.
type Manager struct {
	provider   cryptox.Provider
	iterations int
}

// NewManager returns a Manager using p for randomness and key derivation.
// A non-positive iterations value selects cryptox.DefaultIterations.
func NewManager(p cryptox.Provider, iterations int) *Manager {
	if iterations <= 0 {
		iterations = cryptox.DefaultIterations
	}
	return &Manager{provider: p, iterations: iterations}
}

// Enroll generates a fresh salt and derives the authentication hash of
// password. The only possible error is cryptox.ErrRandomnessUnavailable.
func (m *Manager) Enroll(password []byte) (*Credential, error) {
	salt, err := m.provider.Random(cryptox.SaltSize)
	if err != nil {
		return nil, fmt.Errorf("error generating credential salt: %w", err)
	}
	hash := m.provider.DeriveKey(password, salt, m.iterations, cryptox.KeySize)

	return &Credential{
		PasswordHash: base64.StdEncoding.EncodeToString(hash),
		PasswordSalt: base64.StdEncoding.EncodeToString(salt),
	}, nil
}

// Verify re-derives the hash of password with storedSalt and compares it to
// storedHash in constant time. A wrong password yields (false, nil).
func (m *Manager) Verify(password []byte, storedHash, storedSalt string) (bool, error) {
	hash, err := base64.StdEncoding.DecodeString(storedHash)
	if err != nil {
		return false, fmt.Errorf("%w: hash: %v", ErrMalformedCredential, err)
	}
	salt, err := base64.StdEncoding.DecodeString(storedSalt)
	if err != nil {
		return false, fmt.Errorf("%w: salt: %v", ErrMalformedCredential, err)
	}
	if len(hash) != cryptox.KeySize || len(salt) == 0 {
		return false, fmt.Errorf("%w: unexpected field length", ErrMalformedCredential)
	}

	candidate := m.provider.DeriveKey(password, salt, m.iterations, cryptox.KeySize)
	return subtle.ConstantTimeCompare(hash, candidate) == 1, nil
}
