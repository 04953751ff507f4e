package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	cookieName = "session"
	tokenKey   = "token"
)

// Manager creates, resolves and destroys sessions for HTTP requests.
type Manager struct {
	cookies *sessions.CookieStore
	store   Store
	ttl     time.Duration
	secure  bool
	now     func() time.Time
}

func NewManager(key []byte, store Store, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		cookies: sessions.NewCookieStore(key),
		store:   store,
		ttl:     ttl,
		secure:  secure,
		now:     time.Now,
	}
}

func (m *Manager) options(maxAge int) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Create starts a session for id and writes its token cookie. Any session
// previously attached to the request is destroyed.
func (m *Manager) Create(w http.ResponseWriter, r *http.Request, id Identity) (*Session, error) {
	// a cookie that fails to decode still yields a usable fresh session
	cs, _ := m.cookies.Get(r, cookieName)
	if old, ok := cs.Values[tokenKey].(string); ok && old != "" {
		if err := m.store.Delete(r.Context(), old); err != nil {
			return nil, fmt.Errorf("drop previous session: %w", err)
		}
	}

	now := m.now()
	s := &Session{
		Token:     uuid.NewString(),
		Identity:  id,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(r.Context(), s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	cs.Values[tokenKey] = s.Token
	cs.Options = m.options(int(m.ttl / time.Second))
	if err := cs.Save(r, w); err != nil {
		return nil, fmt.Errorf("write session cookie: %w", err)
	}
	return s, nil
}

// Current resolves the request's session or returns ErrUnauthenticated.
func (m *Manager) Current(r *http.Request) (*Session, error) {
	cs, err := m.cookies.Get(r, cookieName)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	token, ok := cs.Values[tokenKey].(string)
	if !ok || token == "" {
		return nil, ErrUnauthenticated
	}

	s, err := m.store.Get(r.Context(), token)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		return nil, ErrUnauthenticated
	}
	return s, nil
}

// Rename updates the display name cached in the session.
func (m *Manager) Rename(ctx context.Context, token, name string) error {
	s, err := m.store.Get(ctx, token)
	if err != nil {
		return err
	}
	s.Identity.UserName = name
	return m.store.Save(ctx, s)
}

// Destroy removes the server-side session and expires the cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	cs, _ := m.cookies.Get(r, cookieName)
	if token, ok := cs.Values[tokenKey].(string); ok && token != "" {
		if err := m.store.Delete(r.Context(), token); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	delete(cs.Values, tokenKey)
	cs.Options = m.options(-1)
	return cs.Save(r, w)
}
