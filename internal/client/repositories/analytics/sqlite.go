package analytics

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, e *models.AnalyticsEvent) error {
	var data sql.NullString
	if len(e.Data) > 0 {
		data = sql.NullString{String: string(e.Data), Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO analytics (user_id, event, data, timestamp) VALUES (?, ?, ?, ?)`,
		e.UserID, e.Event, data, dbx.FormatTime(e.Timestamp))
	if err != nil {
		return fmt.Errorf("failed to insert analytics event: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to get analytics event id: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.AnalyticsEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, event, data, timestamp FROM analytics WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select analytics events: %w", err)
	}
	defer rows.Close()

	var result []models.AnalyticsEvent
	for rows.Next() {
		var (
			e    models.AnalyticsEvent
			data sql.NullString
			ts   string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Event, &data, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan analytics event: %w", err)
		}
		if data.Valid {
			e.Data = []byte(data.String)
		}
		if e.Timestamp, err = dbx.ParseTime(ts); err != nil {
			return nil, fmt.Errorf("bad timestamp in analytics event %d: %w", e.ID, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
