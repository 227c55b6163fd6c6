package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/vitalkeeper/internal/credential"
	"github.com/dmitrijs2005/vitalkeeper/internal/cryptox"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/session"
	"github.com/dmitrijs2005/vitalkeeper/internal/vault"

	_ "modernc.org/sqlite"
)

// Low work factor keeps the suite fast; the KDF itself is covered in cryptox.
const testIterations = 1000

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	provider cryptox.Provider
	tracker  *Tracker
	auth     *AuthService
	health   *HealthService
	checkIns *CheckInService
	partners *PartnerService
	export   *ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db))

	return newEnvWithDB(db, repomanager.NewSQLiteRepositoryManager())
}

func newEnvWithDB(db *sql.DB, rm repomanager.RepositoryManager) *testEnv {
	log := logging.NewNop()
	p := cryptox.NewProvider(nil)
	v := vault.New(p, testIterations)
	clock := func() time.Time { return fixedNow }

	env := &testEnv{db: db, rm: rm, provider: p}
	env.tracker = NewTracker(db, rm, log)
	env.tracker.now = clock
	env.auth = NewAuthService(db, rm, credential.NewManager(p, testIterations), v, env.tracker, log, 0)
	env.auth.now = clock
	env.health = NewHealthService(db, rm, v, env.tracker, log)
	env.health.now = clock
	env.checkIns = NewCheckInService(db, rm, env.tracker, log, 0)
	env.checkIns.now = clock
	env.partners = NewPartnerService(db, rm, p, env.checkIns, env.tracker, log)
	env.partners.now = clock
	env.export = NewExportService(db, rm, env.tracker, log)
	env.export.now = clock
	return env
}

func testProfile() models.Profile {
	b := models.NewHealthBaseline("3-4", 7)
	b.Caffeine = "low"
	b.CurrentSupplements = []string{"zinc", "folate"}
	return models.Profile{Name: "Alex", Age: 32, Sex: models.SexMale, Baseline: b}
}

const testPassword = "correcthorse1"

func signup(t *testing.T, env *testEnv, email string) *session.Session {
	t.Helper()
	s, err := env.auth.Signup(context.Background(), email, []byte(testPassword), testProfile())
	require.NoError(t, err)
	return s
}

func day(offset int) string {
	return fixedNow.AddDate(0, 0, offset).Format("2006-01-02")
}
