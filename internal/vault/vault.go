// Package vault seals structured records under a password and opens them
// again.
//
// Every Seal derives a new AES-256 key with PBKDF2 from the password and a
// fresh random salt, and encrypts the JSON form of the record with AES-GCM
// under a fresh random IV. The salt is independent of the one used by the
// credential manager, so the stored authentication hash never equals the
// encryption key. Envelopes are never updated in place: callers persist each
// new envelope and treat older ones as superseded.
//
// Open fails with ErrMalformedEnvelope before decrypting anything if the
// envelope is structurally invalid, with ErrDecryption for a wrong password or
// tampered data, and with ErrInvalidRecord if the decrypted content does not
// fit the record type. It never hands back partial data.
package vault

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/cryptox"
)

// Record is a value that can be sealed. Validate is called before sealing and
// again after opening.
type Record interface {
	Validate() error
}

// Vault seals and opens records.
type Vault struct {
	provider   cryptox.Provider
	iterations int
}

// New returns a Vault using p for randomness, key derivation and encryption.
// A non-positive iterations value selects cryptox.DefaultIterations.
func New(p cryptox.Provider, iterations int) *Vault {
	if iterations <= 0 {
		iterations = cryptox.DefaultIterations
	}
	return &Vault{provider: p, iterations: iterations}
}

// Seal validates rec, serializes it and encrypts it under a key derived from
// password. Two calls with identical inputs never produce the same envelope.
func (v *Vault) Seal(rec Record, password []byte) (*Envelope, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	plaintext, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	defer common.WipeByteArray(plaintext)

	salt, err := v.provider.Random(cryptox.SaltSize)
	if err != nil {
		return nil, fmt.Errorf("error generating salt: %w", err)
	}
	iv, err := v.provider.Random(cryptox.IVSize)
	if err != nil {
		return nil, fmt.Errorf("error generating iv: %w", err)
	}

	key := v.provider.DeriveKey(password, salt, v.iterations, cryptox.KeySize)
	defer common.WipeByteArray(key)

	ciphertext, err := v.provider.Seal(key, iv, plaintext)
	if err != nil {
		return nil, fmt.Errorf("encryption error: %w", err)
	}

	return newEnvelope(ciphertext, iv, salt), nil
}

// Open decrypts env with a key derived from password and decodes the result
// into rec, which must be a non-nil pointer. rec is left untouched on any
// error.
func (v *Vault) Open(env *Envelope, password []byte, rec Record) error {
	target := reflect.ValueOf(rec)
	if rec == nil || target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("%w: record must be a non-nil pointer", ErrInvalidRecord)
	}

	raw, err := env.decode()
	if err != nil {
		return err
	}

	key := v.provider.DeriveKey(password, raw.salt, v.iterations, cryptox.KeySize)
	defer common.WipeByteArray(key)

	plaintext, err := v.provider.Open(key, raw.iv, raw.ciphertext)
	if err != nil {
		if errors.Is(err, cryptox.ErrAuthentication) {
			return ErrDecryption
		}
		return fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	defer common.WipeByteArray(plaintext)

	// Decode into a scratch value so a schema failure cannot leak a half
	// populated record to the caller.
	scratch := reflect.New(target.Elem().Type())
	dec := json.NewDecoder(bytes.NewReader(plaintext))
	dec.DisallowUnknownFields()
	if err := dec.Decode(scratch.Interface()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	decoded, ok := scratch.Interface().(Record)
	if !ok {
		return fmt.Errorf("%w: %T does not implement Record", ErrInvalidRecord, scratch.Interface())
	}
	if err := decoded.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	target.Elem().Set(scratch.Elem())
	return nil
}
