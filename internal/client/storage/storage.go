// Package storage opens the local SQLite database file and brings its schema
// up to date.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/vitalkeeper/internal/filex"

	_ "modernc.org/sqlite"
)

// Pragmas applied to every connection.
const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// DSN turns a file path (or ":memory:") into a modernc sqlite DSN with the
// connection pragmas appended.
func DSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?" + pragmas
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + sep + pragmas
}

// Open opens the database at path, creating its directory if needed, and
// runs migrations through rm. The pool is limited to one connection: SQLite
// serializes writers anyway and an in-memory database only exists on its own
// connection.
func Open(ctx context.Context, path string, rm repomanager.RepositoryManager) (*sql.DB, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if _, err := filex.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}
	return db, nil
}
