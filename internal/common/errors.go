// Package common defines shared sentinel errors and small helpers used
// across the vitalkeeper client layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Session lifecycle errors.
	ErrorNoSession      = errors.New("no active session")
	ErrorSessionExpired = errors.New("session expired")
)
