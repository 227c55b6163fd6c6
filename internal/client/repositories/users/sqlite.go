package users

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

const selectUser = `SELECT id, email, name, age, sex, start_date, created_at, password_hash, password_salt FROM users`

func (r *SQLiteRepository) Create(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (id, email, name, age, sex, start_date, created_at, password_hash, password_salt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, common.NormalizeEmail(u.Email), u.Name, u.Age, string(u.Sex),
		dbx.FormatTime(u.StartDate), dbx.FormatTime(u.CreatedAt),
		u.PasswordHash, u.PasswordSalt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, selectUser+` WHERE email = ?`, common.NormalizeEmail(email))
	return scanUser(row)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, selectUser+` WHERE id = ?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u                  models.User
		sex                string
		startDate, created string
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Age, &sex, &startDate, &created, &u.PasswordHash, &u.PasswordSalt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", err)
	}

	u.Sex = models.Sex(sex)
	if u.StartDate, err = dbx.ParseTime(startDate); err != nil {
		return nil, fmt.Errorf("bad start_date for user %s: %w", u.ID, err)
	}
	if u.CreatedAt, err = dbx.ParseTime(created); err != nil {
		return nil, fmt.Errorf("bad created_at for user %s: %w", u.ID, err)
	}
	return &u, nil
}
