package metadata

import (
	"context"
)

// Keys stored in the metadata table.
const (
	KeyLastEmail = "last_email"
)

// Repository is a small key/value store for client-side settings that do not
// belong to any user row.
type Repository interface {
	// Get returns common.ErrorNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
