// Package session maps opaque tokens to signed-in users. The token travels in a
// signed gorilla/sessions cookie; the session data lives server-side in a Store.
package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnauthenticated means the request carries no valid session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrSessionNotFound is returned by a Store for unknown or expired tokens.
	ErrSessionNotFound = errors.New("session not found")
)

// Identity is the verified user behind a session.
type Identity struct {
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
}

type Session struct {
	Token     string    `json:"token"`
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store is the server-side session table.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session placed by the auth middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
