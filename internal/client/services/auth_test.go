package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/credential"
)

func TestSignup_CreatesUserSealedBaselineAndSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s, err := env.auth.Signup(ctx, " Alex@Example.com ", []byte(testPassword), testProfile())
	require.NoError(t, err)
	require.NoError(t, s.Err())
	assert.Equal(t, "alex@example.com", s.Email())

	user, err := env.rm.Users(env.db).GetByEmail(ctx, "alex@example.com")
	require.NoError(t, err)
	assert.Equal(t, s.UserID(), user.ID)
	assert.Equal(t, "Alex", user.Name)
	assert.True(t, user.StartDate.Equal(fixedNow))
	assert.NotContains(t, user.PasswordHash, testPassword)

	row, err := env.rm.HealthData(env.db).Latest(ctx, user.ID)
	require.NoError(t, err)
	assert.NotContains(t, row.Envelope.Ciphertext, "3-4")
	assert.NotEqual(t, user.PasswordSalt, row.Envelope.Salt, "vault salt is independent of the credential salt")

	email, err := env.auth.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", email)

	events, err := env.rm.Analytics(env.db).ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventSignupCompleted, events[0].Event)
}

func TestSignup_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		mutate   func(*models.Profile)
	}{
		{name: "bad email", email: "not-an-email", password: testPassword},
		{name: "short password", email: "a@b.co", password: "short"},
		{name: "missing name", email: "a@b.co", password: testPassword, mutate: func(p *models.Profile) { p.Name = " " }},
		{name: "too young", email: "a@b.co", password: testPassword, mutate: func(p *models.Profile) { p.Age = 17 }},
		{name: "too old", email: "a@b.co", password: testPassword, mutate: func(p *models.Profile) { p.Age = 101 }},
		{name: "bad sex", email: "a@b.co", password: testPassword, mutate: func(p *models.Profile) { p.Sex = "x" }},
		{name: "bad baseline", email: "a@b.co", password: testPassword, mutate: func(p *models.Profile) { p.Baseline.SleepHours = 30 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProfile()
			if tt.mutate != nil {
				tt.mutate(&p)
			}
			_, err := env.auth.Signup(ctx, tt.email, []byte(tt.password), p)
			require.ErrorIs(t, err, common.ErrorValidation)
		})
	}

	var n int
	require.NoError(t, env.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Zero(t, n)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	signup(t, env, "alex@example.com")

	_, err := env.auth.Signup(context.Background(), "ALEX@example.com", []byte(testPassword), testProfile())
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	var n int
	require.NoError(t, env.db.QueryRow(`SELECT COUNT(*) FROM health_data`).Scan(&n))
	assert.Equal(t, 1, n, "failed signup leaves no sealed data behind")
}

func TestSignup_RollsBackWhenBaselineInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	env := newEnvWithDB(db, repomanager.NewSQLiteRepositoryManager())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO health_data")).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err = env.auth.Signup(context.Background(), "a@b.co", []byte(testPassword), testProfile())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created := signup(t, env, "alex@example.com")

	s, err := env.auth.Login(ctx, "Alex@Example.com", []byte(testPassword))
	require.NoError(t, err)
	assert.Equal(t, created.UserID(), s.UserID())

	_, err = env.auth.Login(ctx, "alex@example.com", []byte("wrongpassword"))
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = env.auth.Login(ctx, "nobody@example.com", []byte(testPassword))
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_CorruptedCredential(t *testing.T) {
	env := newTestEnv(t)
	signup(t, env, "alex@example.com")
	_, err := env.db.Exec(`UPDATE users SET password_hash = '%%%'`)
	require.NoError(t, err)

	_, err = env.auth.Login(context.Background(), "alex@example.com", []byte(testPassword))
	require.ErrorIs(t, err, credential.ErrMalformedCredential)
	require.NotErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_DatabaseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	env := newEnvWithDB(db, repomanager.NewSQLiteRepositoryManager())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email")).WillReturnError(errors.New("db down"))

	_, err = env.auth.Login(context.Background(), "a@b.co", []byte(testPassword))
	require.Error(t, err)
	require.NotErrorIs(t, err, common.ErrorUnauthorized)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogout_DestroysSessionAndKeepsEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s := signup(t, env, "alex@example.com")

	env.auth.Logout(ctx, s)
	env.auth.Logout(ctx, nil)

	require.ErrorIs(t, s.Err(), common.ErrorNoSession)
	_, err := env.auth.CurrentUser(ctx, s)
	require.ErrorIs(t, err, common.ErrorNoSession)

	email, err := env.auth.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", email)

	require.NoError(t, env.auth.ForgetEmail(ctx))
	email, err = env.auth.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)
}

func TestLogin_SessionExpires(t *testing.T) {
	env := newTestEnv(t)
	signup(t, env, "alex@example.com")
	env.auth.sessionTTL = time.Nanosecond

	s, err := env.auth.Login(context.Background(), "alex@example.com", []byte(testPassword))
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	_, err = env.auth.CurrentUser(context.Background(), s)
	require.ErrorIs(t, err, common.ErrorSessionExpired)
}

func TestCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	s := signup(t, env, "alex@example.com")

	u, err := env.auth.CurrentUser(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", u.Email)
	assert.Equal(t, models.SexMale, u.Sex)
}
