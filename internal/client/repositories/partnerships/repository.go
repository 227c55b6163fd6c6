// Package partnerships persists partner pairing state.
package partnerships

import (
	"context"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
)

type Repository interface {
	// Upsert stores p, replacing any existing partnership of p.UserID.
	Upsert(ctx context.Context, p *models.Partnership) error
	// GetByUser returns common.ErrorNotFound when the user has no partnership.
	GetByUser(ctx context.Context, userID string) (*models.Partnership, error)
	// FindByCode returns the partnership that issued code, or
	// common.ErrorNotFound.
	FindByCode(ctx context.Context, code string) (*models.Partnership, error)
}
