// Package services contains the application services of the vitalkeeper
// CLI. Every operation on user data takes the caller's *session.Session; the
// session identifies the user and lends its secret to the vault for exactly
// one seal or open.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/credential"
	"github.com/dmitrijs2005/vitalkeeper/internal/dbx"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/session"
	"github.com/dmitrijs2005/vitalkeeper/internal/vault"
)

// Onboarding limits.
const (
	MinPasswordLength = 8
	MinAge            = 18
	MaxAge            = 100
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles signup, login and logout.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	credentials *credential.Manager
	vault       *vault.Vault
	tracker     *Tracker
	log         logging.Logger
	sessionTTL  time.Duration
	now         func() time.Time
}

func NewAuthService(db *sql.DB, rm repomanager.RepositoryManager, creds *credential.Manager, v *vault.Vault,
	tracker *Tracker, log logging.Logger, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: rm,
		credentials: creds,
		vault:       v,
		tracker:     tracker,
		log:         log,
		sessionTTL:  sessionTTL,
		now:         time.Now,
	}
}

// ValidateSignup checks the onboarding answers before any key derivation
// happens. Errors wrap common.ErrorValidation.
func ValidateSignup(email string, password []byte, p models.Profile) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("%w: please enter a valid email address", common.ErrorValidation)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinPasswordLength)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if p.Age < MinAge || p.Age > MaxAge {
		return fmt.Errorf("%w: please enter a valid age", common.ErrorValidation)
	}
	if p.Sex != models.SexMale && p.Sex != models.SexFemale {
		return fmt.Errorf("%w: sex must be %q or %q", common.ErrorValidation, models.SexMale, models.SexFemale)
	}
	if err := p.Baseline.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

// Signup enrolls a new user, seals the health baseline under the password and
// stores both in one transaction. On success the user is logged in.
func (a *AuthService) Signup(ctx context.Context, email string, password []byte, p models.Profile) (*session.Session, error) {
	if p.Baseline.Version == 0 {
		p.Baseline.Version = models.BaselineVersion
	}
	if err := ValidateSignup(email, password, p); err != nil {
		return nil, err
	}

	cred, err := a.credentials.Enroll(password)
	if err != nil {
		return nil, fmt.Errorf("error enrolling credential: %w", err)
	}
	env, err := a.vault.Seal(p.Baseline, password)
	if err != nil {
		return nil, fmt.Errorf("error sealing health baseline: %w", err)
	}

	now := a.now().UTC()
	user := &models.User{
		ID:         uuid.NewString(),
		Email:      common.NormalizeEmail(email),
		Name:       strings.TrimSpace(p.Name),
		Age:        p.Age,
		Sex:        p.Sex,
		StartDate:  now,
		CreatedAt:  now,
		Credential: *cred,
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := a.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		return a.repomanager.HealthData(tx).Insert(ctx, &models.HealthData{
			UserID:    user.ID,
			Envelope:  *env,
			UpdatedAt: now,
		})
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("an account with this email already exists: %w", common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	a.log.Info(ctx, "user signed up", "user_id", user.ID)
	a.rememberEmail(ctx, user.Email)
	a.tracker.Track(ctx, user.ID, models.EventSignupCompleted, nil)

	return session.New(user.ID, user.Email, password, a.sessionTTL)
}

// Login verifies the password of email and opens a new session. An unknown
// email and a wrong password both yield common.ErrorUnauthorized.
func (a *AuthService) Login(ctx context.Context, email string, password []byte) (*session.Session, error) {
	user, err := a.repomanager.Users(a.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	ok, err := a.credentials.Verify(password, user.PasswordHash, user.PasswordSalt)
	if err != nil {
		a.log.Error(ctx, "stored credential is corrupted", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		a.log.Warn(ctx, "failed login attempt", "user_id", user.ID)
		return nil, common.ErrorUnauthorized
	}

	a.log.Info(ctx, "user logged in", "user_id", user.ID)
	a.rememberEmail(ctx, user.Email)
	a.tracker.Track(ctx, user.ID, models.EventLogin, nil)

	return session.New(user.ID, user.Email, password, a.sessionTTL)
}

// Logout destroys the session secret. The remembered email is kept.
func (a *AuthService) Logout(ctx context.Context, s *session.Session) {
	if s == nil {
		return
	}
	a.log.Info(ctx, "user logged out", "user_id", s.UserID())
	s.Destroy()
}

// CurrentUser returns the user that owns s.
func (a *AuthService) CurrentUser(ctx context.Context, s *session.Session) (*models.User, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	u, err := a.repomanager.Users(a.db).GetByID(ctx, s.UserID())
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return u, nil
}

// RememberedEmail returns the email of the last successful login, or "" when
// there is none.
func (a *AuthService) RememberedEmail(ctx context.Context) (string, error) {
	v, err := a.repomanager.Metadata(a.db).Get(ctx, metadata.KeyLastEmail)
	if errors.Is(err, common.ErrorNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error reading remembered email: %w", err)
	}
	return string(v), nil
}

// ForgetEmail clears the remembered email.
func (a *AuthService) ForgetEmail(ctx context.Context) error {
	if err := a.repomanager.Metadata(a.db).Delete(ctx, metadata.KeyLastEmail); err != nil {
		return fmt.Errorf("error forgetting email: %w", err)
	}
	return nil
}

func (a *AuthService) rememberEmail(ctx context.Context, email string) {
	if err := a.repomanager.Metadata(a.db).Set(ctx, metadata.KeyLastEmail, []byte(email)); err != nil {
		a.log.Warn(ctx, "could not remember email", "error", err)
	}
}
