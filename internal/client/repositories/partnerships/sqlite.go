package partnerships

import (
	"context"
	"database/sql"
	"encoding/json"
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

const selectPartnership = `SELECT user_id, partner_id, pairing_code, shared_data, created_at FROM partnerships`

func (r *SQLiteRepository) Upsert(ctx context.Context, p *models.Partnership) error {
	shared, err := json.Marshal(p.SharedData)
	if err != nil {
		return fmt.Errorf("failed to encode shared data: %w", err)
	}

	var partner sql.NullString
	if p.PartnerID != "" {
		partner = sql.NullString{String: p.PartnerID, Valid: true}
	}

	query := `INSERT INTO partnerships (user_id, partner_id, pairing_code, shared_data, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			partner_id = excluded.partner_id,
			pairing_code = excluded.pairing_code,
			shared_data = excluded.shared_data`

	_, err = r.db.ExecContext(ctx, query, p.UserID, partner, p.PairingCode, string(shared), dbx.FormatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert partnership: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByUser(ctx context.Context, userID string) (*models.Partnership, error) {
	return scan(r.db.QueryRowContext(ctx, selectPartnership+` WHERE user_id = ?`, userID))
}

func (r *SQLiteRepository) FindByCode(ctx context.Context, code string) (*models.Partnership, error) {
	return scan(r.db.QueryRowContext(ctx, selectPartnership+` WHERE pairing_code = ? ORDER BY created_at, rowid LIMIT 1`, code))
}

func scan(row *sql.Row) (*models.Partnership, error) {
	var (
		p               models.Partnership
		partner         sql.NullString
		shared, created string
	)
	err := row.Scan(&p.UserID, &partner, &p.PairingCode, &shared, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select partnership: %w", err)
	}

	p.PartnerID = partner.String
	if err := json.Unmarshal([]byte(shared), &p.SharedData); err != nil {
		return nil, fmt.Errorf("bad shared_data for %s: %w", p.UserID, err)
	}
	if p.CreatedAt, err = dbx.ParseTime(created); err != nil {
		return nil, fmt.Errorf("bad created_at for %s: %w", p.UserID, err)
	}
	return &p, nil
}
