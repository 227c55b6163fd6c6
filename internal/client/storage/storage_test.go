package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/repomanager"
)

func TestDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?"+pragmas, DSN(":memory:"))
	assert.Equal(t, "file:data.db?"+pragmas, DSN("data.db"))
	assert.Equal(t, "file:data.db?mode=rwc&"+pragmas, DSN("file:data.db?mode=rwc"))
}

func TestOpen_FileDatabaseMigratesAndEnforcesForeignKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vk.db")
	ctx := context.Background()

	db, err := Open(ctx, path, repomanager.NewSQLiteRepositoryManager())
	require.NoError(t, err)
	defer db.Close()

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)

	_, err = db.Exec(`INSERT INTO health_data (user_id, ciphertext, iv, salt, updated_at) VALUES ('ghost', '', '', '', '')`)
	require.Error(t, err, "health data must reference an existing user")
}

func TestOpen_ReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vk.db")
	ctx := context.Background()
	rm := repomanager.NewSQLiteRepositoryManager()

	db, err := Open(ctx, path, rm)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO metadata (key, value) VALUES ('k', 'v')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, path, rm)
	require.NoError(t, err)
	defer db.Close()

	var v string
	require.NoError(t, db.QueryRow(`SELECT value FROM metadata WHERE key='k'`).Scan(&v))
	assert.Equal(t, "v", v)
}

type failingManager struct {
	*repomanager.SQLiteRepositoryManager
}

func (failingManager) RunMigrations(context.Context, *sql.DB) error { return errors.New("nope") }

func TestOpen_MigrationFailure(t *testing.T) {
	_, err := Open(context.Background(), ":memory:", failingManager{repomanager.NewSQLiteRepositoryManager()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error running migrations")
}

func TestOpen_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "vk.db")

	db, err := Open(context.Background(), path, repomanager.NewSQLiteRepositoryManager())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.FileExists(t, path)
}
