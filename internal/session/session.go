// Package session holds the state of one authenticated session: who is logged
// in and the session secret (the plaintext password) needed to derive vault
// keys on demand.
//
// The secret lives in a memguard enclave, encrypted at rest in process
// memory, and is only decrypted into a locked buffer for the duration of a
// single WithSecret call. It is never written to persistent storage. A
// Session is created by the authentication flow and destroyed on logout or
// expiry; there is no package-level session state.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/awnumar/memguard"

	"github.com/dmitrijs2005/vitalkeeper/internal/common"
)

// ErrEmptySecret is returned by New for an empty password. memguard cannot
// seal zero bytes.
var ErrEmptySecret = errors.New("empty session secret")

// Session is an authenticated session. The zero value is not usable; create
// sessions with New.
type Session struct {
	userID    string
	email     string
	expiresAt time.Time

	mu     sync.Mutex
	secret *memguard.Enclave
	now    func() time.Time
}

// New seals a copy of password into a new Session for the given user. The
// caller keeps ownership of password and should wipe it. A zero ttl means the
// session does not expire on its own.
func New(userID, email string, password []byte, ttl time.Duration) (*Session, error) {
	if len(password) == 0 {
		return nil, ErrEmptySecret
	}
	s := &Session{userID: userID, email: email, now: time.Now}
	if ttl > 0 {
		s.expiresAt = s.now().Add(ttl)
	}
	// NewEnclave wipes its argument, so hand it a private copy.
	s.secret = memguard.NewEnclave(append([]byte(nil), password...))
	return s, nil
}

// UserID returns the id of the logged-in user.
func (s *Session) UserID() string { return s.userID }

// Email returns the email the user logged in with.
func (s *Session) Email() string { return s.email }

// Active reports whether the session still holds its secret and has not
// expired.
func (s *Session) Active() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.secret != nil && !s.expiredLocked()
}

// Err reports why the session can no longer be used: common.ErrorNoSession
// after Destroy, common.ErrorSessionExpired once the TTL has passed. It
// returns nil for an active session. An expired session drops its secret.
func (s *Session) Err() error {
	if s == nil {
		return common.ErrorNoSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errLocked()
}

// WithSecret decrypts the session secret into a locked buffer, passes it to fn
// and destroys the buffer afterwards. fn must not retain the slice. It fails
// with the same errors as Err.
func (s *Session) WithSecret(fn func(secret []byte) error) error {
	if s == nil {
		return common.ErrorNoSession
	}

	s.mu.Lock()
	if err := s.errLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	buf, err := s.secret.Open()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}

// Destroy drops the secret. It is safe to call more than once.
func (s *Session) Destroy() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.secret = nil
	s.mu.Unlock()
}

func (s *Session) errLocked() error {
	if s.secret == nil {
		return common.ErrorNoSession
	}
	if s.expiredLocked() {
		s.secret = nil
		return common.ErrorSessionExpired
	}
	return nil
}

func (s *Session) expiredLocked() bool {
	return !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt)
}
