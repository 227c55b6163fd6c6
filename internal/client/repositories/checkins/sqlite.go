package checkins

import (
	"context"
	"database/sql"
	"errors"
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

const selectCheckIn = `SELECT id, user_id, date, supplements, sleep, exercise, temperature, alcohol, stress,
	created_at, updated_at FROM check_ins`

func (r *SQLiteRepository) Upsert(ctx context.Context, c *models.CheckIn) error {
	query := `INSERT INTO check_ins (user_id, date, supplements, sleep, exercise, temperature, alcohol, stress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			supplements = excluded.supplements,
			sleep = excluded.sleep,
			exercise = excluded.exercise,
			temperature = excluded.temperature,
			alcohol = excluded.alcohol,
			stress = excluded.stress,
			updated_at = excluded.updated_at
		RETURNING id, created_at`

	var created string
	err := r.db.QueryRowContext(ctx, query,
		c.UserID, c.Date, c.Supplements, c.Sleep, c.Exercise, c.Temperature, c.Alcohol, c.Stress,
		dbx.FormatTime(c.CreatedAt), dbx.FormatTime(c.UpdatedAt)).Scan(&c.ID, &created)
	if err != nil {
		return fmt.Errorf("failed to upsert check-in: %w", err)
	}
	if c.CreatedAt, err = dbx.ParseTime(created); err != nil {
		return fmt.Errorf("bad created_at in check-in %d: %w", c.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByDate(ctx context.Context, userID, date string) (*models.CheckIn, error) {
	row := r.db.QueryRowContext(ctx, selectCheckIn+` WHERE user_id = ? AND date = ?`, userID, date)
	c, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select check-in: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.CheckIn, error) {
	if limit <= 0 {
		return nil, nil
	}
	return r.list(ctx, selectCheckIn+` WHERE user_id = ? ORDER BY date DESC LIMIT ?`, userID, limit)
}

func (r *SQLiteRepository) ListAll(ctx context.Context, userID string) ([]models.CheckIn, error) {
	return r.list(ctx, selectCheckIn+` WHERE user_id = ? ORDER BY date`, userID)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.CheckIn, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select check-ins: %w", err)
	}
	defer rows.Close()

	var result []models.CheckIn
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.CheckIn, error) {
	var (
		c                models.CheckIn
		created, updated string
	)
	err := s.Scan(&c.ID, &c.UserID, &c.Date, &c.Supplements, &c.Sleep, &c.Exercise,
		&c.Temperature, &c.Alcohol, &c.Stress, &created, &updated)
	if err != nil {
		return nil, err
	}
	if c.CreatedAt, err = dbx.ParseTime(created); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = dbx.ParseTime(updated); err != nil {
		return nil, err
	}
	return &c, nil
}
