package auth

import (
	"errors"
	"net/http"
	"time"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// ErrNoSession means no access token cookie was presented at all, as opposed
// to a cookie carrying an invalid or expired token.
var ErrNoSession = errors.New("no session cookie")

// SessionTransport maps issued tokens to cookie directives and back. It does
// no I/O of its own; the HTTP layer writes the headers.
type SessionTransport struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewSessionTransport(secure bool, accessTTL, refreshTTL time.Duration) *SessionTransport {
	return &SessionTransport{
		secure:     secure,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Attach returns the cookie pair for a freshly issued session.
func (t *SessionTransport) Attach(accessToken, refreshToken string) []*http.Cookie {
	return []*http.Cookie{
		t.cookie(AccessTokenCookie, accessToken, int(t.accessTTL.Seconds())),
		t.cookie(RefreshTokenCookie, refreshToken, int(t.refreshTTL.Seconds())),
	}
}

// Clear returns expired cookie directives that remove both session cookies.
func (t *SessionTransport) Clear() []*http.Cookie {
	return []*http.Cookie{
		t.cookie(AccessTokenCookie, "", -1),
		t.cookie(RefreshTokenCookie, "", -1),
	}
}

// Extract reads the serialized access token from the request cookies.
func (t *SessionTransport) Extract(r *http.Request) (string, error) {
	c, err := r.Cookie(AccessTokenCookie)
	if err != nil || c.Value == "" {
		return "", ErrNoSession
	}
	return c.Value, nil
}

func (t *SessionTransport) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
