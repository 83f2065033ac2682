package application

import (
	"github.com/taskdeck/taskdeck/internal/domain"
)

// CreateSession issues a session for an authenticated user and returns its
// token. The session expires SessionTTL after creation.
func (s *AuthService) CreateSession(user domain.User) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFn()
	token := newSessionToken()
	s.sessions[token] = domain.Session{
		Token:     token,
		UserID:    user.UserID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
		IsActive:  true,
	}
	return token
}

// ValidateSession returns the session for the token if it is present, not
// expired, and active. An expired session is removed on detection, so later
// lookups stay cheap.
func (s *AuthService) ValidateSession(token string) (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return domain.Session{}, false
	}
	if session.Expired(s.nowFn()) {
		delete(s.sessions, token)
		return domain.Session{}, false
	}
	if !session.IsActive {
		return domain.Session{}, false
	}
	return session, true
}

// InvalidateSession removes the session and reports whether it existed.
func (s *AuthService) InvalidateSession(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[token]; !ok {
		return false
	}
	delete(s.sessions, token)
	return true
}

// ExtendSession refreshes the session's expiry to SessionTTL from now. It
// reports whether a live session existed for the token.
func (s *AuthService) ExtendSession(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return false
	}
	now := s.nowFn()
	if session.Expired(now) {
		delete(s.sessions, token)
		return false
	}
	if !session.IsActive {
		return false
	}
	session.ExpiresAt = now.Add(s.sessionTTL)
	s.sessions[token] = session
	return true
}

// ActiveSessions sweeps expired sessions and returns a snapshot of the
// survivors keyed by token.
func (s *AuthService) ActiveSessions() map[string]domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSessionsLocked()
}

// activeSessionsLocked performs the lazy sweep. Callers must hold mu.
func (s *AuthService) activeSessionsLocked() map[string]domain.Session {
	now := s.nowFn()
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
		}
	}
	out := make(map[string]domain.Session, len(s.sessions))
	for token, session := range s.sessions {
		out[token] = session
	}
	return out
}

// UserSessions returns the live sessions owned by the given user id.
func (s *AuthService) UserSessions(userID int) map[string]domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]domain.Session)
	for token, session := range s.activeSessionsLocked() {
		if session.UserID == userID {
			out[token] = session
		}
	}
	return out
}

// InvalidateUserSessions removes every live session owned by the user and
// returns how many were removed.
func (s *AuthService) InvalidateUserSessions(userID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for token, session := range s.activeSessionsLocked() {
		if session.UserID == userID {
			delete(s.sessions, token)
			count++
		}
	}
	return count
}
