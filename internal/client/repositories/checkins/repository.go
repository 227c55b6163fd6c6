// Package checkins persists daily habit check-ins, one per user and date.
package checkins

import (
	"context"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
)

type Repository interface {
	// Upsert inserts c or replaces the habit fields of the existing check-in
	// for the same user and date. CreatedAt of an existing row is kept.
	Upsert(ctx context.Context, c *models.CheckIn) error
	// GetByDate returns common.ErrorNotFound when the day has no check-in.
	GetByDate(ctx context.Context, userID, date string) (*models.CheckIn, error)
	// ListRecent returns up to limit check-ins, newest first.
	ListRecent(ctx context.Context, userID string, limit int) ([]models.CheckIn, error)
	// ListAll returns every check-in of userID, oldest first.
	ListAll(ctx context.Context, userID string) ([]models.CheckIn, error)
}
