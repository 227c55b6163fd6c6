package cryptox

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy pool closed") }

func TestRandom_LengthAndEntropyHint(t *testing.T) {
	p := NewProvider(nil)

	a, err := p.Random(SaltSize)
	require.NoError(t, err)
	b, err := p.Random(SaltSize)
	require.NoError(t, err)

	assert.Len(t, a, SaltSize)
	assert.Len(t, b, SaltSize)
	assert.NotEqual(t, a, b)
}

func TestRandom_SourceFailure(t *testing.T) {
	p := NewProvider(failingReader{})

	b, err := p.Random(IVSize)
	require.ErrorIs(t, err, ErrRandomnessUnavailable)
	require.Nil(t, b)
}

func TestRandom_ShortSource(t *testing.T) {
	p := NewProvider(bytes.NewReader([]byte{1, 2, 3}))

	_, err := p.Random(IVSize)
	require.ErrorIs(t, err, ErrRandomnessUnavailable)
}

// RFC 7914 section 11 PBKDF2-HMAC-SHA256 test vector.
func TestDeriveKey_KnownVector(t *testing.T) {
	p := NewProvider(nil)

	key := p.DeriveKey([]byte("passwd"), []byte("salt"), 1, 64)
	expectedHex := "55ac046e56e3089fec1691c22544b605f94185216dde0465e68b9d57c20dacbc" +
		"49ca9cccf179b645991664b39d77ef317c71b845b1e30bd509112041d3a19783"
	assert.Equal(t, expectedHex, hex.EncodeToString(key))
}

func TestDeriveKey_Deterministic(t *testing.T) {
	p := NewProvider(nil)
	password := []byte("secret-password")
	salt := []byte("fixed-salt-16byt")

	key1 := p.DeriveKey(password, salt, 1000, KeySize)
	key2 := p.DeriveKey(password, salt, 1000, KeySize)

	assert.Equal(t, key1, key2)
	assert.Len(t, key1, KeySize)
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	p := NewProvider(nil)
	password := []byte("secret-password")

	k1 := p.DeriveKey(password, []byte("salt-1"), 1000, KeySize)
	k2 := p.DeriveKey(password, []byte("salt-2"), 1000, KeySize)
	k3 := p.DeriveKey(password, []byte("salt-1"), 1001, KeySize)

	assert.NotEqual(t, k1, k2, "different salts must give different keys")
	assert.NotEqual(t, k1, k3, "different work factors must give different keys")
}

func TestDeriveKey_NonPositiveIterations(t *testing.T) {
	p := NewProvider(nil)
	assert.Equal(t,
		p.DeriveKey([]byte("pw"), []byte("salt"), 1, KeySize),
		p.DeriveKey([]byte("pw"), []byte("salt"), 0, KeySize))
}

func TestSealOpen_RoundTrip(t *testing.T) {
	p := NewProvider(nil)
	key, err := p.Random(KeySize)
	require.NoError(t, err)
	iv, err := p.Random(IVSize)
	require.NoError(t, err)

	ct, err := p.Seal(key, iv, []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Len(t, ct, len(`{"a":1}`)+TagSize)

	pt, err := p.Open(key, iv, ct)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), pt)
}

func TestOpen_WrongKeyOrTamper(t *testing.T) {
	p := NewProvider(nil)
	key, _ := p.Random(KeySize)
	other, _ := p.Random(KeySize)
	iv, _ := p.Random(IVSize)

	ct, err := p.Seal(key, iv, []byte("payload"))
	require.NoError(t, err)

	_, err = p.Open(other, iv, ct)
	require.ErrorIs(t, err, ErrAuthentication)

	ct[0] ^= 0xff
	_, err = p.Open(key, iv, ct)
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestSeal_InvalidParameters(t *testing.T) {
	p := NewProvider(nil)

	_, err := p.Seal(make([]byte, 7), make([]byte, IVSize), []byte("x"))
	require.Error(t, err)

	_, err = p.Seal(make([]byte, KeySize), make([]byte, 8), []byte("x"))
	require.Error(t, err)

	_, err = p.Open(make([]byte, KeySize), make([]byte, 8), []byte("x"))
	require.Error(t, err)
}
