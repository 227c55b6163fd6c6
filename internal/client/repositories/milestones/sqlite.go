package milestones

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, m *models.Milestone) error {
	query := `INSERT INTO milestones (user_id, type, streak, achieved_at) VALUES (?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, m.UserID, m.Type, m.Streak, dbx.FormatTime(m.AchievedAt))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("failed to insert milestone: %w", err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to get milestone id: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, userID string) ([]models.Milestone, error) {
	query := `SELECT id, user_id, type, streak, achieved_at FROM milestones WHERE user_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select milestones: %w", err)
	}
	defer rows.Close()

	var result []models.Milestone
	for rows.Next() {
		var (
			m        models.Milestone
			achieved string
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.Type, &m.Streak, &achieved); err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		if m.AchievedAt, err = dbx.ParseTime(achieved); err != nil {
			return nil, fmt.Errorf("bad achieved_at in milestone %d: %w", m.ID, err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Exists(ctx context.Context, userID, milestoneType string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM milestones WHERE user_id = ? AND type = ?`, userID, milestoneType).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check milestone: %w", err)
	}
	return n > 0, nil
}
