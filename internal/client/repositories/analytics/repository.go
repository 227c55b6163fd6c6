// Package analytics stores the local usage event log.
package analytics

import (
	"context"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
)

type Repository interface {
	Insert(ctx context.Context, e *models.AnalyticsEvent) error
	// ListByUser returns the user's events, oldest first.
	ListByUser(ctx context.Context, userID string) ([]models.AnalyticsEvent, error)
}
