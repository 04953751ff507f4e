package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/s/bitmentor/internal/service"
)

const (
	userInfoURL     = "https://www.googleapis.com/oauth2/v2/userinfo"
	stateCookieName = "oauth_state"
	stateTTL        = 10 * time.Minute
)

var ErrInvalidState = errors.New("oauth state mismatch")

// InitGoogleOAuthConfig builds the Google sign-in client.
func InitGoogleOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// NewState issues a one-time state value and pins it to the browser.
func NewState(w http.ResponseWriter, secure bool) string {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   int(stateTTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return state
}

// VerifyState checks the callback state against the pinned cookie and clears it.
func VerifyState(w http.ResponseWriter, r *http.Request) error {
	c, err := r.Cookie(stateCookieName)
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Path: "/auth/google", MaxAge: -1})
	if err != nil || c.Value == "" || c.Value != r.URL.Query().Get("state") {
		return ErrInvalidState
	}
	return nil
}

// FetchGoogleProfile exchanges the authorization code and loads the user's profile.
func FetchGoogleProfile(ctx context.Context, cfg *oauth2.Config, code string) (service.GoogleProfile, error) {
	var p service.GoogleProfile

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return p, fmt.Errorf("token exchange: %w", err)
	}

	resp, err := cfg.Client(ctx, token).Get(userInfoURL)
	if err != nil {
		return p, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return p, fmt.Errorf("fetch userinfo: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return p, fmt.Errorf("decode userinfo: %w", err)
	}
	return p, nil
}
