package vault

import (
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/vitalkeeper/internal/cryptox"
)

// Envelope is a self-describing sealed record. All fields are base64 text so
// the envelope can be stored or exported as-is.
type Envelope struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
}

// envelopeBytes is the decoded binary form of an Envelope.
type envelopeBytes struct {
	ciphertext []byte
	iv         []byte
	salt       []byte
}

func newEnvelope(ciphertext, iv, salt []byte) *Envelope {
	return &Envelope{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		IV:         base64.StdEncoding.EncodeToString(iv),
		Salt:       base64.StdEncoding.EncodeToString(salt),
	}
}

// Validate checks field presence, encoding and binary lengths without
// touching any key material.
func (e *Envelope) Validate() error {
	_, err := e.decode()
	return err
}

func (e *Envelope) decode() (*envelopeBytes, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: nil envelope", ErrMalformedEnvelope)
	}

	salt, err := decodeField("salt", e.Salt)
	if err != nil {
		return nil, err
	}
	if len(salt) != cryptox.SaltSize {
		return nil, fmt.Errorf("%w: salt length %d, want %d", ErrMalformedEnvelope, len(salt), cryptox.SaltSize)
	}

	iv, err := decodeField("iv", e.IV)
	if err != nil {
		return nil, err
	}
	if len(iv) != cryptox.IVSize {
		return nil, fmt.Errorf("%w: iv length %d, want %d", ErrMalformedEnvelope, len(iv), cryptox.IVSize)
	}

	ciphertext, err := decodeField("ciphertext", e.Ciphertext)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < cryptox.TagSize {
		return nil, fmt.Errorf("%w: ciphertext shorter than tag", ErrMalformedEnvelope)
	}

	return &envelopeBytes{ciphertext: ciphertext, iv: iv, salt: salt}, nil
}

func decodeField(name, value string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedEnvelope, name)
	}
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedEnvelope, name, err)
	}
	return b, nil
}
