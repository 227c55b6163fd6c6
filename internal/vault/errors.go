package vault

import "errors"

var (
	// ErrDecryption covers both a wrong password and a tampered or corrupted
	// ciphertext; authenticated encryption cannot tell them apart. The only
	// valid recovery is asking for the password again.
	ErrDecryption = errors.New("invalid password or corrupted data")

	// ErrMalformedEnvelope is returned before any decryption is attempted when
	// an envelope field is missing, not valid base64 or has the wrong length.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrInvalidRecord means the record failed validation: either before
	// sealing, or after a successful decryption produced content that does
	// not match the record schema.
	ErrInvalidRecord = errors.New("invalid record")
)
