package domain

import (
	"fmt"
	"strings"
	"time"
)

// User is the account entity owned by the data service.
// ProfileData holds arbitrary caller-supplied attributes and is never
// interpreted by the services.
type User struct {
	UserID      int
	Username    string
	Email       string
	IsActive    bool
	CreatedAt   time.Time
	LastLogin   *time.Time
	ProfileData map[string]any
}

// NewUser validates and constructs a User. CreatedAt is stamped at
// construction and IsActive defaults to true.
func NewUser(userID int, username, email string) (User, error) {
	u := User{
		UserID:      userID,
		Username:    username,
		Email:       email,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
		ProfileData: map[string]any{},
	}
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

// Validate enforces the construction invariants. Records decoded from the
// data file pass through the same checks, so a hand-edited file cannot
// smuggle invalid state into the store.
func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("%w: username cannot be empty", ErrValidation)
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if u.UserID < 0 {
		return fmt.Errorf("%w: user id must not be negative", ErrValidation)
	}
	return nil
}

// TouchLastLogin records a successful login at the given time.
func (u *User) TouchLastLogin(now time.Time) {
	t := now
	u.LastLogin = &t
}

// Deactivate marks the account inactive.
func (u *User) Deactivate() {
	u.IsActive = false
}

// Activate marks the account active.
func (u *User) Activate() {
	u.IsActive = true
}

// UpdateProfile merges the given fields into ProfileData.
func (u *User) UpdateProfile(fields map[string]any) {
	if u.ProfileData == nil {
		u.ProfileData = map[string]any{}
	}
	for k, v := range fields {
		u.ProfileData[k] = v
	}
}

// Clone returns a deep copy. The store hands out clones so callers never
// share mutable state with it.
func (u User) Clone() User {
	out := u
	if u.LastLogin != nil {
		t := *u.LastLogin
		out.LastLogin = &t
	}
	if u.ProfileData != nil {
		out.ProfileData = make(map[string]any, len(u.ProfileData))
		for k, v := range u.ProfileData {
			out.ProfileData[k] = v
		}
	}
	return out
}

// Snapshot returns the wire-shaped mapping of the user, with RFC 3339
// timestamps and nil for absent optionals.
func (u User) Snapshot() map[string]any {
	return map[string]any{
		"user_id":      u.UserID,
		"username":     u.Username,
		"email":        u.Email,
		"is_active":    u.IsActive,
		"created_at":   formatTime(u.CreatedAt),
		"last_login":   formatTimePtr(u.LastLogin),
		"profile_data": u.ProfileData,
	}
}

func (u User) String() string {
	status := "active"
	if !u.IsActive {
		status = "inactive"
	}
	return fmt.Sprintf("User(%s, %s, %s)", u.Username, u.Email, status)
}
