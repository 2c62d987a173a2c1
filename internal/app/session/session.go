/*
Package session holds the server-side session records, the stores that keep them, and the
Manager that ties a session to the browser through a signed cookie.

A session expires after a period of inactivity. Every authenticated request pushes the
expiry forward, so the window slides.
*/
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a Store when the session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// User is the authenticated user attached to a session.
type User struct {
	Username  string    `json:"username"`
	LastLogin time.Time `json:"last_login"`
}

// FieldErrors carries registration validation messages from a failed POST to the next GET.
// An empty string means the field had no error.
type FieldErrors struct {
	Username string `json:"username,omitempty"`
	Data     string `json:"data,omitempty"`
	Nickname string `json:"nickname,omitempty"`
}

// Empty reports whether no field has an error.
func (f FieldErrors) Empty() bool {
	return f.Username == "" && f.Data == "" && f.Nickname == ""
}

// Session is the server-side record behind a session cookie.
type Session struct {
	ID        string       `json:"id"`
	User      *User        `json:"user,omitempty"`
	Errors    *FieldErrors `json:"errors,omitempty"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Authenticated reports whether a user is logged in on this session.
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil
}

// TakeErrors returns the pending registration errors and clears them.
// The caller must save the session for the clearing to persist.
func (s *Session) TakeErrors() *FieldErrors {
	if s == nil {
		return nil
	}
	e := s.Errors
	s.Errors = nil
	return e
}

func (s *Session) clone() *Session {
	c := *s
	if s.User != nil {
		u := *s.User
		c.User = &u
	}
	if s.Errors != nil {
		e := *s.Errors
		c.Errors = &e
	}
	return &c
}

// Store persists sessions keyed by ID.
type Store interface {
	// Get returns the session with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Save stores s and sets its ExpiresAt to now plus the store TTL.
	Save(ctx context.Context, s *Session) error

	// Touch pushes the expiry of a live session to now plus the store TTL without
	// rewriting its contents, and returns the new expiry. A missing or expired session
	// yields ErrNotFound.
	Touch(ctx context.Context, id string) (time.Time, error)

	// Destroy removes the session. Destroying a missing session is not an error.
	Destroy(ctx context.Context, id string) error

	// Close releases resources held by the store.
	Close() error
}

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// FromContext returns the session loaded for the request, or nil for anonymous requests.
func FromContext(ctx context.Context) *Session {
	s, ok := ctx.Value(sessionContextKey).(*Session)
	if !ok {
		return nil
	}
	return s
}

// UserFromContext returns the logged-in user, or nil.
func UserFromContext(ctx context.Context) *User {
	s := FromContext(ctx)
	if !s.Authenticated() {
		return nil
	}
	return s.User
}
