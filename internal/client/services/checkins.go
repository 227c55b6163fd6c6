package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/progress"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/session"
)

// DefaultHistoryLimit is the number of check-ins History returns when the
// service is built with a non-positive limit.
const DefaultHistoryLimit = 90

// SaveResult is the outcome of CheckInService.Save.
type SaveResult struct {
	CheckIn models.CheckIn
	Streak  int
	// Milestone is set when this check-in completed a new streak milestone.
	Milestone *models.Milestone
}

// CheckInService records daily check-ins and derives progress from them.
type CheckInService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	tracker      *Tracker
	log          logging.Logger
	historyLimit int
	now          func() time.Time
}

func NewCheckInService(db *sql.DB, rm repomanager.RepositoryManager, tracker *Tracker, log logging.Logger, historyLimit int) *CheckInService {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &CheckInService{db: db, repomanager: rm, tracker: tracker, log: log, historyLimit: historyLimit, now: time.Now}
}

// Save stores c as the session user's check-in for c.Date (today when
// empty), replacing an earlier check-in of the same day, then awards a streak
// milestone if one was reached.
func (c *CheckInService) Save(ctx context.Context, s *session.Session, in models.CheckIn) (*SaveResult, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}

	now := c.now().UTC()
	in.UserID = s.UserID()
	if in.Date == "" {
		in.Date = common.DateOf(now)
	}
	if _, err := time.Parse(common.DateLayout, in.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", common.ErrorValidation)
	}
	in.CreatedAt, in.UpdatedAt = now, now

	if err := c.repomanager.CheckIns(c.db).Upsert(ctx, &in); err != nil {
		return nil, fmt.Errorf("error saving check-in: %w", err)
	}
	c.log.Info(ctx, "check-in saved", "user_id", in.UserID, "date", in.Date)
	c.tracker.Track(ctx, in.UserID, models.EventCheckInSaved, map[string]any{
		"date":            in.Date,
		"completedFields": in.CompletedFields(),
	})

	recent, err := c.repomanager.CheckIns(c.db).ListRecent(ctx, in.UserID, c.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("error loading check-ins: %w", err)
	}

	res := &SaveResult{CheckIn: in, Streak: progress.CurrentStreak(recent, now)}
	m, err := c.awardMilestone(ctx, in.UserID, res.Streak, now)
	if err != nil {
		return nil, err
	}
	res.Milestone = m
	return res, nil
}

func (c *CheckInService) awardMilestone(ctx context.Context, userID string, streak int, now time.Time) (*models.Milestone, error) {
	days, ok := progress.ReachedMilestone(streak)
	if !ok {
		return nil, nil
	}

	repo := c.repomanager.Milestones(c.db)
	kind := models.StreakMilestoneType(days)
	exists, err := repo.Exists(ctx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("error checking milestone: %w", err)
	}
	if exists {
		return nil, nil
	}

	m := &models.Milestone{UserID: userID, Type: kind, Streak: days, AchievedAt: now}
	if err := repo.Create(ctx, m); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, nil
		}
		return nil, fmt.Errorf("error saving milestone: %w", err)
	}

	c.log.Info(ctx, "milestone achieved", "user_id", userID, "type", kind)
	c.tracker.Track(ctx, userID, models.EventMilestoneAchieved, map[string]any{"streak": days})
	return m, nil
}

// Today returns today's check-in or common.ErrorNotFound.
func (c *CheckInService) Today(ctx context.Context, s *session.Session) (*models.CheckIn, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	ci, err := c.repomanager.CheckIns(c.db).GetByDate(ctx, s.UserID(), common.DateOf(c.now()))
	if err != nil {
		return nil, fmt.Errorf("error loading today's check-in: %w", err)
	}
	return ci, nil
}

// History returns the most recent check-ins, newest first.
func (c *CheckInService) History(ctx context.Context, s *session.Session) ([]models.CheckIn, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	return c.history(ctx, s.UserID())
}

func (c *CheckInService) history(ctx context.Context, userID string) ([]models.CheckIn, error) {
	list, err := c.repomanager.CheckIns(c.db).ListRecent(ctx, userID, c.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("error loading check-ins: %w", err)
	}
	return list, nil
}

// Summary computes the progress dashboard of the session user.
func (c *CheckInService) Summary(ctx context.Context, s *session.Session) (*progress.Summary, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	return c.summaryOf(ctx, s.UserID())
}

func (c *CheckInService) summaryOf(ctx context.Context, userID string) (*progress.Summary, error) {
	user, err := c.repomanager.Users(c.db).GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	recent, err := c.history(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum := progress.Summarize(user, recent, c.now())
	return &sum, nil
}

// Milestones lists the achieved milestones of the session user.
func (c *CheckInService) Milestones(ctx context.Context, s *session.Session) ([]models.Milestone, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	list, err := c.repomanager.Milestones(c.db).List(ctx, s.UserID())
	if err != nil {
		return nil, fmt.Errorf("error loading milestones: %w", err)
	}
	return list, nil
}
