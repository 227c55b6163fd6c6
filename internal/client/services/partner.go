package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/progress"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/cryptox"
	"github.com/dmitrijs2005/vitalkeeper/internal/dbx"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/session"
)

const (
	PairingCodeLength   = 6
	pairingCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Largest multiple of the alphabet size below 256; bytes at or above it
	// are rejected so every character is equally likely.
	pairingCodeByteLimit = 256 - 256%len(pairingCodeAlphabet)

	maxCodeAttempts = 5
)

// PartnerSummary compares the progress of two paired users.
type PartnerSummary struct {
	Partnership models.Partnership
	PartnerName string
	Mine        progress.Summary
	Partner     progress.Summary
	// CombinedDays is the number of days both partners have checked in,
	// bounded by the smaller total.
	CombinedDays int
}

// PartnerService implements partner pairing.
type PartnerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	provider    cryptox.Provider
	checkIns    *CheckInService
	tracker     *Tracker
	log         logging.Logger
	now         func() time.Time
}

func NewPartnerService(db *sql.DB, rm repomanager.RepositoryManager, p cryptox.Provider, checkIns *CheckInService,
	tracker *Tracker, log logging.Logger) *PartnerService {
	return &PartnerService{db: db, repomanager: rm, provider: p, checkIns: checkIns, tracker: tracker, log: log, now: time.Now}
}

// GeneratePairingCode returns a random code of PairingCodeLength characters
// from A-Z and 0-9.
func GeneratePairingCode(p cryptox.Provider) (string, error) {
	var sb strings.Builder
	for sb.Len() < PairingCodeLength {
		buf, err := p.Random(PairingCodeLength)
		if err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= pairingCodeByteLimit {
				continue
			}
			sb.WriteByte(pairingCodeAlphabet[int(b)%len(pairingCodeAlphabet)])
			if sb.Len() == PairingCodeLength {
				break
			}
		}
	}
	return sb.String(), nil
}

// NormalizePairingCode upper-cases code and checks its shape.
func NormalizePairingCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != PairingCodeLength {
		return "", ErrInvalidPairingCode
	}
	for _, r := range code {
		if !strings.ContainsRune(pairingCodeAlphabet, r) {
			return "", ErrInvalidPairingCode
		}
	}
	return code, nil
}

// CreateCode issues a new pairing code for the session user and stores an
// open partnership under it. A user that is already paired gets
// ErrAlreadyPaired.
func (p *PartnerService) CreateCode(ctx context.Context, s *session.Session) (string, error) {
	if err := s.Err(); err != nil {
		return "", err
	}
	repo := p.repomanager.Partnerships(p.db)

	current, err := repo.GetByUser(ctx, s.UserID())
	switch {
	case err == nil && current.Paired():
		return "", ErrAlreadyPaired
	case err != nil && !errors.Is(err, common.ErrorNotFound):
		return "", fmt.Errorf("error loading partnership: %w", err)
	}

	code, err := p.uniqueCode(ctx)
	if err != nil {
		return "", err
	}

	err = repo.Upsert(ctx, &models.Partnership{
		UserID:      s.UserID(),
		PairingCode: code,
		SharedData:  models.DefaultSharedData,
		CreatedAt:   p.now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("error saving pairing code: %w", err)
	}

	p.log.Info(ctx, "pairing code issued", "user_id", s.UserID())
	return code, nil
}

func (p *PartnerService) uniqueCode(ctx context.Context) (string, error) {
	repo := p.repomanager.Partnerships(p.db)
	for range maxCodeAttempts {
		code, err := GeneratePairingCode(p.provider)
		if err != nil {
			return "", fmt.Errorf("error generating pairing code: %w", err)
		}
		_, err = repo.FindByCode(ctx, code)
		if errors.Is(err, common.ErrorNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("error checking pairing code: %w", err)
		}
	}
	return "", fmt.Errorf("no free pairing code after %d attempts", maxCodeAttempts)
}

// Pair links the session user with the user that issued code. Both users end
// up with a partnership pointing at each other.
func (p *PartnerService) Pair(ctx context.Context, s *session.Session, code string) (*models.Partnership, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	code, err := NormalizePairingCode(code)
	if err != nil {
		return nil, err
	}

	var mine *models.Partnership
	err = dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := p.repomanager.Partnerships(tx)

		issuer, err := repo.FindByCode(ctx, code)
		if errors.Is(err, common.ErrorNotFound) {
			return ErrInvalidPairingCode
		}
		if err != nil {
			return err
		}
		if issuer.UserID == s.UserID() {
			return ErrSelfPairing
		}
		if issuer.Paired() {
			return ErrPairingCodeUsed
		}

		current, err := repo.GetByUser(ctx, s.UserID())
		switch {
		case err == nil && current.Paired():
			return ErrAlreadyPaired
		case err != nil && !errors.Is(err, common.ErrorNotFound):
			return err
		}

		now := p.now().UTC()
		issuer.PartnerID = s.UserID()
		if err := repo.Upsert(ctx, issuer); err != nil {
			return err
		}
		mine = &models.Partnership{
			UserID:      s.UserID(),
			PartnerID:   issuer.UserID,
			PairingCode: code,
			SharedData:  models.DefaultSharedData,
			CreatedAt:   now,
		}
		return repo.Upsert(ctx, mine)
	})
	if err != nil {
		if isPairingError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("error pairing: %w", err)
	}

	p.log.Info(ctx, "partners paired", "user_id", s.UserID(), "partner_id", mine.PartnerID)
	p.tracker.Track(ctx, s.UserID(), models.EventPartnerPaired, map[string]any{"partnerId": mine.PartnerID})
	return mine, nil
}

func isPairingError(err error) bool {
	for _, target := range []error{ErrInvalidPairingCode, ErrPairingCodeUsed, ErrSelfPairing, ErrAlreadyPaired} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Partnership returns the session user's partnership or common.ErrorNotFound.
func (p *PartnerService) Partnership(ctx context.Context, s *session.Session) (*models.Partnership, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	ps, err := p.repomanager.Partnerships(p.db).GetByUser(ctx, s.UserID())
	if err != nil {
		return nil, fmt.Errorf("error loading partnership: %w", err)
	}
	return ps, nil
}

// Summary compares the session user with the partner. It returns
// common.ErrorNotFound when the user is not paired.
func (p *PartnerService) Summary(ctx context.Context, s *session.Session) (*PartnerSummary, error) {
	ps, err := p.Partnership(ctx, s)
	if err != nil {
		return nil, err
	}
	if !ps.Paired() {
		return nil, fmt.Errorf("not paired yet: %w", common.ErrorNotFound)
	}

	partner, err := p.repomanager.Users(p.db).GetByID(ctx, ps.PartnerID)
	if err != nil {
		return nil, fmt.Errorf("error loading partner: %w", err)
	}
	mine, err := p.checkIns.summaryOf(ctx, s.UserID())
	if err != nil {
		return nil, err
	}
	theirs, err := p.checkIns.summaryOf(ctx, partner.ID)
	if err != nil {
		return nil, err
	}

	return &PartnerSummary{
		Partnership:  *ps,
		PartnerName:  partner.Name,
		Mine:         *mine,
		Partner:      *theirs,
		CombinedDays: min(mine.TotalCheckIns, theirs.TotalCheckIns),
	}, nil
}
