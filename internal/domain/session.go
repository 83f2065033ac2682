package domain

import "time"

// Session is a login session record owned by the auth service. The token is
// an opaque random string and doubles as the session key.
type Session struct {
	Token     string
	UserID    int
	Username  string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
	IsActive  bool
}

// Expired reports whether the session's lifetime has passed at the given time.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Snapshot returns the wire-shaped mapping of the session. The token is
// deliberately omitted; callers that hold the session already hold its token.
func (s Session) Snapshot() map[string]any {
	return map[string]any{
		"user_id":    s.UserID,
		"username":   s.Username,
		"email":      s.Email,
		"created_at": formatTime(s.CreatedAt),
		"expires_at": formatTime(s.ExpiresAt),
		"is_active":  s.IsActive,
	}
}
