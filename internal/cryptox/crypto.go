// Package cryptox wraps the cryptographic primitives the vault and the
// credential manager are built on: a secure random source, PBKDF2 key
// derivation and AES-GCM authenticated encryption.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length in bytes of every PBKDF2 salt.
	SaltSize = 16

	// IVSize is the AES-GCM nonce length in bytes.
	IVSize = 12

	// KeySize is the derived key (and authentication hash) length: AES-256.
	KeySize = 32

	// TagSize is the length of the GCM authentication tag appended to the
	// ciphertext.
	TagSize = 16

	// DefaultIterations is the PBKDF2 work factor used when none is configured.
	DefaultIterations = 100_000
)

var (
	// ErrRandomnessUnavailable means the secure random source failed. It is
	// fatal for the operation that needed fresh salt or IV.
	ErrRandomnessUnavailable = errors.New("secure randomness unavailable")

	// ErrAuthentication is returned by Open when the GCM tag does not match.
	ErrAuthentication = errors.New("message authentication failed")
)

// Provider is the primitive capability the vault and the credential manager
// consume.
//
// Contract:
//   - Random returns n bytes from a cryptographically secure source or
//     ErrRandomnessUnavailable.
//   - DeriveKey is deterministic in all of its inputs.
//   - Seal/Open perform authenticated encryption with a 96-bit IV; the tag is
//     part of the ciphertext. Open returns ErrAuthentication on any mismatch.
type Provider interface {
	Random(n int) ([]byte, error)
	DeriveKey(password, salt []byte, iterations, keyLen int) []byte
	Seal(key, iv, plaintext []byte) ([]byte, error)
	Open(key, iv, ciphertext []byte) ([]byte, error)
}

// StdProvider implements Provider with crypto/rand (or the given reader),
// PBKDF2-HMAC-SHA256 and AES-GCM.
type StdProvider struct {
	rand io.Reader
}

// NewProvider returns a StdProvider reading randomness from r. A nil r means
// crypto/rand.Reader.
func NewProvider(r io.Reader) *StdProvider {
	if r == nil {
		r = rand.Reader
	}
	return &StdProvider{rand: r}
}

// Random reads exactly n bytes from the random source.
func (p *StdProvider) Random(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(p.rand, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
	}
	return b, nil
}

// DeriveKey runs PBKDF2 with HMAC-SHA256 over password and salt.
//
// Parameters:
//   - password: the user secret, used as-is (UTF-8 bytes).
//   - salt: a random per-purpose salt, see SaltSize.
//   - iterations: work factor; values below 1 are treated as 1.
//   - keyLen: output length in bytes.
//
// Example:
//
//	p := cryptox.NewProvider(nil)
//	salt, _ := p.Random(cryptox.SaltSize)
//	key := p.DeriveKey([]byte("correcthorse1"), salt, cryptox.DefaultIterations, cryptox.KeySize)
func (p *StdProvider) DeriveKey(password, salt []byte, iterations, keyLen int) []byte {
	if iterations < 1 {
		iterations = 1
	}
	return pbkdf2.Key(password, salt, iterations, keyLen, sha256.New)
}

// Seal encrypts plaintext with AES-GCM under key and iv. The returned slice is
// ciphertext||tag.
func (p *StdProvider) Seal(key, iv, plaintext []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != aesgcm.NonceSize() {
		return nil, fmt.Errorf("invalid iv length %d", len(iv))
	}
	return aesgcm.Seal(nil, iv, plaintext, nil), nil
}

// Open reverses Seal. Any tag mismatch, whether caused by a wrong key or by
// modified bytes, yields ErrAuthentication.
func (p *StdProvider) Open(key, iv, ciphertext []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != aesgcm.NonceSize() {
		return nil, fmt.Errorf("invalid iv length %d", len(iv))
	}
	plaintext, err := aesgcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
