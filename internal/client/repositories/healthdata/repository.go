// Package healthdata persists sealed health baselines. Rows are only ever
// inserted; the newest row of a user is the current baseline.
package healthdata

import (
	"context"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
)

type Repository interface {
	// Insert appends h and sets its ID.
	Insert(ctx context.Context, h *models.HealthData) error
	// Latest returns the newest row of userID or common.ErrorNotFound.
	Latest(ctx context.Context, userID string) (*models.HealthData, error)
	// ListByUser returns all rows of userID, oldest first.
	ListByUser(ctx context.Context, userID string) ([]models.HealthData, error)
}
