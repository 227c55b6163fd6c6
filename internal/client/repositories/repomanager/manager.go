// Package repomanager vends the SQLite repositories of the local database
// bound to either the connection pool or a transaction, so services can run
// several repositories inside one dbx.WithTx call.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/analytics"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/checkins"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/healthdata"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/milestones"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/partnerships"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/users"
	"github.com/dmitrijs2005/vitalkeeper/internal/dbx"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Metadata(db dbx.DBTX) metadata.Repository
	Users(db dbx.DBTX) users.Repository
	HealthData(db dbx.DBTX) healthdata.Repository
	CheckIns(db dbx.DBTX) checkins.Repository
	Milestones(db dbx.DBTX) milestones.Repository
	Partnerships(db dbx.DBTX) partnerships.Repository
	Analytics(db dbx.DBTX) analytics.Repository
}

// SQLiteRepositoryManager is the RepositoryManager of the local SQLite file.
type SQLiteRepositoryManager struct{}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

// migrateUp is a seam for tests.
var migrateUp = migrations.Up

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db)
}

func (m *SQLiteRepositoryManager) Metadata(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) HealthData(db dbx.DBTX) healthdata.Repository {
	return healthdata.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) CheckIns(db dbx.DBTX) checkins.Repository {
	return checkins.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Milestones(db dbx.DBTX) milestones.Repository {
	return milestones.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Partnerships(db dbx.DBTX) partnerships.Repository {
	return partnerships.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Analytics(db dbx.DBTX) analytics.Repository {
	return analytics.NewSQLiteRepository(db)
}
