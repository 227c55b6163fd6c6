package users

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/credential"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db))
	return db
}

func sampleUser() *models.User {
	ts := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return &models.User{
		ID:         "u1",
		Email:      "  Alice@Example.COM ",
		Name:       "Alice",
		Age:        31,
		Sex:        models.SexFemale,
		StartDate:  ts,
		CreatedAt:  ts,
		Credential: credential.Credential{PasswordHash: "aGFzaA==", PasswordSalt: "c2FsdA=="},
	}
}

func TestCreate_ThenGetByEmailAndID(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	u := sampleUser()
	require.NoError(t, r.Create(ctx, u))

	got, err := r.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "alice@example.com", got.Email, "email is stored normalized")
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, 31, got.Age)
	assert.Equal(t, models.SexFemale, got.Sex)
	assert.True(t, got.StartDate.Equal(u.StartDate))
	assert.True(t, got.CreatedAt.Equal(u.CreatedAt))
	assert.Equal(t, u.Credential, got.Credential)

	byID, err := r.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, got, byID)
}

func TestGetByEmail_IsCaseInsensitive(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, sampleUser()))

	got, err := r.GetByEmail(ctx, "ALICE@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, sampleUser()))

	dup := sampleUser()
	dup.ID = "u2"
	dup.Email = "alice@example.com"
	require.ErrorIs(t, r.Create(ctx, dup), common.ErrorAlreadyExists)
}

func TestGet_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = r.GetByID(ctx, "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGet_BadStoredTimestamp(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO users (id, email, start_date, created_at, password_hash, password_salt)
		VALUES ('x', 'x@y.z', 'garbage', 'garbage', '', '')`)
	require.NoError(t, err)

	_, err = r.GetByID(ctx, "x")
	require.Error(t, err)
	require.NotErrorIs(t, err, common.ErrorNotFound)
}
