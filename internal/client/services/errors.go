package services

import "errors"

// Partner pairing errors.
var (
	ErrInvalidPairingCode = errors.New("invalid pairing code")
	ErrPairingCodeUsed    = errors.New("pairing code already used")
	ErrSelfPairing        = errors.New("cannot pair with your own code")
	ErrAlreadyPaired      = errors.New("already paired with a partner")
)
