package milestones

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

func milestone(user string, days int) *models.Milestone {
	return &models.Milestone{
		UserID:     user,
		Type:       models.StreakMilestoneType(days),
		Streak:     days,
		AchievedAt: time.Date(2024, 7, days, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateListExists(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	ok, err := r.Exists(ctx, "u1", "streak_7")
	require.NoError(t, err)
	assert.False(t, ok)

	m7 := milestone("u1", 7)
	require.NoError(t, r.Create(ctx, m7))
	assert.NotZero(t, m7.ID)
	require.NoError(t, r.Create(ctx, milestone("u1", 14)))
	require.NoError(t, r.Create(ctx, milestone("u2", 7)))

	ok, err = r.Exists(ctx, "u1", "streak_7")
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := r.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "streak_7", list[0].Type)
	assert.Equal(t, 7, list[0].Streak)
	assert.True(t, list[0].AchievedAt.Equal(m7.AchievedAt))
	assert.Equal(t, "streak_14", list[1].Type)
}

func TestCreate_DuplicateTypeRejected(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, milestone("u1", 30)))
	require.ErrorIs(t, r.Create(ctx, milestone("u1", 30)), common.ErrorAlreadyExists)
}
