// Package milestones persists achieved streak milestones.
package milestones

import (
	"context"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
)

type Repository interface {
	// Create records m. A second milestone of the same type for the same user
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, m *models.Milestone) error
	// List returns the user's milestones in the order they were achieved.
	List(ctx context.Context, userID string) ([]models.Milestone, error)
	Exists(ctx context.Context, userID, milestoneType string) (bool, error)
}
