package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/config"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/progress"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/services"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/storage"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/credential"
	"github.com/dmitrijs2005/vitalkeeper/internal/cryptox"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/session"
	"github.com/dmitrijs2005/vitalkeeper/internal/vault"
)

type authService interface {
	Signup(ctx context.Context, email string, password []byte, p models.Profile) (*session.Session, error)
	Login(ctx context.Context, email string, password []byte) (*session.Session, error)
	Logout(ctx context.Context, s *session.Session)
	CurrentUser(ctx context.Context, s *session.Session) (*models.User, error)
	RememberedEmail(ctx context.Context) (string, error)
	ForgetEmail(ctx context.Context) error
}

type healthService interface {
	Baseline(ctx context.Context, s *session.Session) (*models.HealthBaseline, error)
	UpdateBaseline(ctx context.Context, s *session.Session, b models.HealthBaseline) error
}

type checkInService interface {
	Save(ctx context.Context, s *session.Session, in models.CheckIn) (*services.SaveResult, error)
	Today(ctx context.Context, s *session.Session) (*models.CheckIn, error)
	History(ctx context.Context, s *session.Session) ([]models.CheckIn, error)
	Summary(ctx context.Context, s *session.Session) (*progress.Summary, error)
	Milestones(ctx context.Context, s *session.Session) ([]models.Milestone, error)
}

type partnerService interface {
	CreateCode(ctx context.Context, s *session.Session) (string, error)
	Pair(ctx context.Context, s *session.Session, code string) (*models.Partnership, error)
	Summary(ctx context.Context, s *session.Session) (*services.PartnerSummary, error)
}

type exportService interface {
	Export(ctx context.Context, s *session.Session, w io.Writer) error
}

// App is the interactive vitalkeeper client. It owns the database handle and
// the session of the logged-in user.
type App struct {
	config   *config.Config
	db       *sql.DB
	log      logging.Logger
	auth     authService
	health   healthService
	checkIns checkInService
	partners partnerService
	exporter exportService
	session  *session.Session
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the database named in c and wires the services on top of it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	rm := repomanager.NewSQLiteRepositoryManager()

	db, err := storage.Open(ctx, c.DatabasePath, rm)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	provider := cryptox.NewProvider(nil)
	creds := credential.NewManager(provider, c.KDFIterations)
	v := vault.New(provider, c.KDFIterations)
	tracker := services.NewTracker(db, rm, log)
	checkIns := services.NewCheckInService(db, rm, tracker, log, c.HistoryLimit)

	return &App{
		config:   c,
		db:       db,
		log:      log,
		auth:     services.NewAuthService(db, rm, creds, v, tracker, log, c.SessionTTL),
		health:   services.NewHealthService(db, rm, v, tracker, log),
		checkIns: checkIns,
		partners: services.NewPartnerService(db, rm, provider, checkIns, tracker, log),
		exporter: services.NewExportService(db, rm, tracker, log),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run shows the welcome banner and blocks in the command loop until the user
// quits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

// Close ends the session and releases the database.
func (a *App) Close(ctx context.Context) {
	a.endSession()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "error closing database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Err() == nil
}

func (a *App) startSession(s *session.Session, name string) {
	a.endSession()
	a.session = s
	a.userName = name
}

func (a *App) endSession() {
	a.session.Destroy()
	a.session = nil
	a.userName = ""
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// requireSession reports whether a command may run. It prints a hint and
// returns ErrorNoSession otherwise.
func (a *App) requireSession() error {
	if err := a.session.Err(); err != nil {
		return a.fail(err)
	}
	return nil
}

// fail prints a user-facing message for err and returns it. An expired
// session is cleared so the prompt reflects it.
func (a *App) fail(err error) error {
	switch {
	case errors.Is(err, vault.ErrDecryption):
		a.println("Invalid password or corrupted data")
	case errors.Is(err, vault.ErrMalformedEnvelope), errors.Is(err, vault.ErrInvalidRecord):
		a.println("Stored health data is corrupted")
	case errors.Is(err, cryptox.ErrRandomnessUnavailable):
		a.println("Secure random source unavailable, nothing was saved")
	case errors.Is(err, common.ErrorSessionExpired):
		a.endSession()
		a.println("Session expired, please log in again")
	case errors.Is(err, common.ErrorNoSession):
		a.println("Please log in first")
	default:
		a.println("Error:", err)
	}
	return err
}
