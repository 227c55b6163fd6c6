package healthdata

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

func (r *SQLiteRepository) Insert(ctx context.Context, h *models.HealthData) error {
	query := `INSERT INTO health_data (user_id, ciphertext, iv, salt, updated_at) VALUES (?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		h.UserID, h.Envelope.Ciphertext, h.Envelope.IV, h.Envelope.Salt, dbx.FormatTime(h.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert health data: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get health data id: %w", err)
	}
	h.ID = id
	return nil
}

func (r *SQLiteRepository) Latest(ctx context.Context, userID string) (*models.HealthData, error) {
	query := `SELECT id, user_id, ciphertext, iv, salt, updated_at FROM health_data
		WHERE user_id = ? ORDER BY id DESC LIMIT 1`

	var (
		h       models.HealthData
		updated string
	)
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&h.ID, &h.UserID, &h.Envelope.Ciphertext, &h.Envelope.IV, &h.Envelope.Salt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select health data: %w", err)
	}
	if h.UpdatedAt, err = dbx.ParseTime(updated); err != nil {
		return nil, fmt.Errorf("bad updated_at in health data %d: %w", h.ID, err)
	}
	return &h, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.HealthData, error) {
	query := `SELECT id, user_id, ciphertext, iv, salt, updated_at FROM health_data
		WHERE user_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select health data: %w", err)
	}
	defer rows.Close()

	var result []models.HealthData
	for rows.Next() {
		var (
			h       models.HealthData
			updated string
		)
		if err := rows.Scan(&h.ID, &h.UserID, &h.Envelope.Ciphertext, &h.Envelope.IV, &h.Envelope.Salt, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan health data: %w", err)
		}
		if h.UpdatedAt, err = dbx.ParseTime(updated); err != nil {
			return nil, fmt.Errorf("bad updated_at in health data %d: %w", h.ID, err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
