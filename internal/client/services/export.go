package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/session"
)

// ExportService dumps everything stored for a user. Health data is exported
// as stored, still sealed.
type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tracker     *Tracker
	log         logging.Logger
	now         func() time.Time
}

func NewExportService(db *sql.DB, rm repomanager.RepositoryManager, tracker *Tracker, log logging.Logger) *ExportService {
	return &ExportService{db: db, repomanager: rm, tracker: tracker, log: log, now: time.Now}
}

// Collect gathers the export document of the session user.
func (e *ExportService) Collect(ctx context.Context, s *session.Session) (*models.Export, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	userID := s.UserID()

	user, err := e.repomanager.Users(e.db).GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	health, err := e.repomanager.HealthData(e.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading health data: %w", err)
	}
	checkIns, err := e.repomanager.CheckIns(e.db).ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading check-ins: %w", err)
	}
	milestones, err := e.repomanager.Milestones(e.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading milestones: %w", err)
	}
	partnership, err := e.repomanager.Partnerships(e.db).GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error loading partnership: %w", err)
	}

	return &models.Export{
		User:        user,
		HealthData:  nonNil(health),
		CheckIns:    nonNil(checkIns),
		Milestones:  nonNil(milestones),
		Partnership: partnership,
		ExportedAt:  e.now().UTC(),
	}, nil
}

// Export writes the export document of the session user to w as indented
// JSON.
func (e *ExportService) Export(ctx context.Context, s *session.Session, w io.Writer) error {
	doc, err := e.Collect(ctx, s)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("error writing export: %w", err)
	}

	e.log.Info(ctx, "data exported", "user_id", s.UserID())
	e.tracker.Track(ctx, s.UserID(), models.EventDataExported, nil)
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
