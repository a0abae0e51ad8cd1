// Package session keeps the server-side record of signed-in users: the
// issued token and a cached copy of the user shown by the portals.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a session has expired or been cleared.
var ErrSessionNotFound = errors.New("session not found")

// User is the cached profile served by /auth/me. It is overwritten as a
// whole on login and profile update, never merged.
type User struct {
	ID        int    `json:"id"`
	BranchID  int    `json:"branch_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role"`
	// StaffID / StudentID link the account to its domain record, if any.
	StaffID   *int `json:"staff_id,omitempty"`
	StudentID *int `json:"student_id,omitempty"`
}

// Session is one signed-in device. ID is the JWT jti.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store is the explicit read/write/clear contract for sessions.
type Store interface {
	Write(ctx context.Context, s Session) error
	Read(ctx context.Context, sessionID string) (*Session, error)
	UpdateUser(ctx context.Context, sessionID string, u User) error
	Clear(ctx context.Context, sessionID string) error
	// ClearUser removes every session of a user, e.g. after a password change.
	ClearUser(ctx context.Context, userID int) error
}
