package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
)

// Tracker writes usage events to the local analytics table. Tracking never
// fails the calling operation: errors are logged and dropped.
type Tracker struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

func NewTracker(db *sql.DB, rm repomanager.RepositoryManager, log logging.Logger) *Tracker {
	return &Tracker{db: db, repomanager: rm, log: log, now: time.Now}
}

// Track records event for userID. data, if not nil, is stored as JSON.
func (t *Tracker) Track(ctx context.Context, userID, event string, data any) {
	e := &models.AnalyticsEvent{UserID: userID, Event: event, Timestamp: t.now()}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			t.log.Warn(ctx, "analytics payload dropped", "event", event, "error", err)
		} else {
			e.Data = raw
		}
	}

	if err := t.repomanager.Analytics(t.db).Insert(ctx, e); err != nil {
		t.log.Warn(ctx, "analytics event not saved", "event", event, "user_id", userID, "error", err)
		return
	}
	t.log.Debug(ctx, "analytics event", "event", event, "user_id", userID)
}
