package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gatehouse/gatehouse/internal/auth"
)

func newTestGuard() (*AuthMiddleware, *auth.JWTManager) {
	tokens := auth.NewJWTManager("test-secret-key", auth.DefaultAccessTokenTTL, auth.DefaultRefreshTokenTTL)
	transport := auth.NewSessionTransport(false, auth.DefaultAccessTokenTTL, auth.DefaultRefreshTokenTTL)
	return NewAuthMiddleware(transport, tokens), tokens
}

func protectedHandler(t *testing.T, called *bool, wantUserID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if got := GetUserID(r.Context()); got != wantUserID {
			t.Errorf("expected user id '%s' in context, got '%s'", wantUserID, got)
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	guard, tokens := newTestGuard()

	token, _, err := tokens.Issue("user-123", auth.TokenKindAccess)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	called := false
	handler := guard.RequireAuth(protectedHandler(t, &called, "user-123"))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("expected downstream handler to run")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}

func TestRequireAuth_NoCookie(t *testing.T) {
	guard, _ := newTestGuard()

	called := false
	handler := guard.RequireAuth(protectedHandler(t, &called, ""))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if called {
		t.Error("downstream handler must not run without a session")
	}
	assertUnauthorized(t, rec, "no session")
}

func TestRequireAuth_TamperedToken(t *testing.T) {
	guard, tokens := newTestGuard()

	token, _, err := tokens.Issue("user-123", auth.TokenKindAccess)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	called := false
	handler := guard.RequireAuth(protectedHandler(t, &called, ""))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token + "x"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if called {
		t.Error("downstream handler must not run with a tampered token")
	}
	assertUnauthorized(t, rec, "invalid session")
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	// A manager whose clock is in the past issues already-expired tokens.
	past := auth.NewJWTManager("test-secret-key", -time.Minute, -time.Minute)
	token, _, err := past.Issue("user-123", auth.TokenKindAccess)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	guard, _ := newTestGuard()

	called := false
	handler := guard.RequireAuth(protectedHandler(t, &called, ""))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if called {
		t.Error("downstream handler must not run with an expired token")
	}
	assertUnauthorized(t, rec, "invalid session")
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	guard, tokens := newTestGuard()

	refresh, _, err := tokens.Issue("user-123", auth.TokenKindRefresh)
	if err != nil {
		t.Fatalf("failed to issue refresh token: %v", err)
	}

	called := false
	handler := guard.RequireAuth(protectedHandler(t, &called, ""))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: refresh})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if called {
		t.Error("downstream handler must not run with a refresh token")
	}
	assertUnauthorized(t, rec, "invalid session")
}

func TestGetUserID_NoIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if got := GetUserID(req.Context()); got != "" {
		t.Errorf("expected empty user id, got '%s'", got)
	}
	if _, ok := GetIdentity(req.Context()); ok {
		t.Error("expected no identity on an unauthenticated context")
	}
}

func assertUnauthorized(t *testing.T, rec *httptest.ResponseRecorder, wantMessage string) {
	t.Helper()

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}

	var body struct {
		Success bool        `json:"success"`
		Data    interface{} `json:"data"`
		Message string      `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body.Success {
		t.Error("expected success=false")
	}
	if body.Data != nil {
		t.Error("expected data=null")
	}
	if body.Message != wantMessage {
		t.Errorf("expected message '%s', got '%s'", wantMessage, body.Message)
	}
}
