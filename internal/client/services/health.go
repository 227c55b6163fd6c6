package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/session"
	"github.com/dmitrijs2005/vitalkeeper/internal/vault"
)

// HealthService reads and updates the sealed health baseline.
type HealthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	vault       *vault.Vault
	tracker     *Tracker
	log         logging.Logger
	now         func() time.Time
}

func NewHealthService(db *sql.DB, rm repomanager.RepositoryManager, v *vault.Vault, tracker *Tracker, log logging.Logger) *HealthService {
	return &HealthService{db: db, repomanager: rm, vault: v, tracker: tracker, log: log, now: time.Now}
}

// Baseline opens the current baseline of the session user. It returns
// common.ErrorNotFound when none is stored, and vault.ErrDecryption when the
// stored envelope cannot be opened with the session secret.
func (h *HealthService) Baseline(ctx context.Context, s *session.Session) (*models.HealthBaseline, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}

	row, err := h.repomanager.HealthData(h.db).Latest(ctx, s.UserID())
	if err != nil {
		return nil, fmt.Errorf("error loading health data: %w", err)
	}

	var b models.HealthBaseline
	err = s.WithSecret(func(password []byte) error {
		return h.vault.Open(&row.Envelope, password, &b)
	})
	if err != nil {
		h.log.Warn(ctx, "health data could not be opened", "user_id", s.UserID(), "row", row.ID, "error", err)
		return nil, fmt.Errorf("error opening health data: %w", err)
	}
	return &b, nil
}

// UpdateBaseline seals b under the session secret and appends it as the new
// current baseline. Earlier envelopes are kept.
func (h *HealthService) UpdateBaseline(ctx context.Context, s *session.Session, b models.HealthBaseline) error {
	if b.Version == 0 {
		b.Version = models.BaselineVersion
	}

	var env *vault.Envelope
	err := s.WithSecret(func(password []byte) error {
		var err error
		env, err = h.vault.Seal(b, password)
		return err
	})
	if err != nil {
		return fmt.Errorf("error sealing health data: %w", err)
	}

	row := &models.HealthData{UserID: s.UserID(), Envelope: *env, UpdatedAt: h.now().UTC()}
	if err := h.repomanager.HealthData(h.db).Insert(ctx, row); err != nil {
		return fmt.Errorf("error saving health data: %w", err)
	}

	h.log.Info(ctx, "health baseline updated", "user_id", s.UserID())
	h.tracker.Track(ctx, s.UserID(), models.EventBaselineUpdated, nil)
	return nil
}
