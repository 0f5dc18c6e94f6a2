package auth

import (
	"errors"
	"testing"
	"time"
)

func TestNewJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", DefaultAccessTokenTTL, DefaultRefreshTokenTTL)

	if manager == nil {
		t.Fatal("expected JWTManager to be created")
	}
	if manager.secretKey != "test-secret" {
		t.Errorf("expected secretKey 'test-secret', got '%s'", manager.secretKey)
	}
	if manager.Lifetime(TokenKindAccess) != 15*time.Minute {
		t.Errorf("expected access lifetime 15m, got %v", manager.Lifetime(TokenKindAccess))
	}
	if manager.Lifetime(TokenKindRefresh) != 7*24*time.Hour {
		t.Errorf("expected refresh lifetime 168h, got %v", manager.Lifetime(TokenKindRefresh))
	}
}

func TestIssue(t *testing.T) {
	manager := NewJWTManager("test-secret-key", DefaultAccessTokenTTL, DefaultRefreshTokenTTL)

	token, expiresAt, err := manager.Issue("user-123", TokenKindAccess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if token == "" {
		t.Error("expected non-empty token")
	}

	expectedExpiry := time.Now().Add(15 * time.Minute)
	if expiresAt.Before(expectedExpiry.Add(-time.Minute)) || expiresAt.After(expectedExpiry.Add(time.Minute)) {
		t.Errorf("expiry time not within expected range")
	}
}

func TestVerify_Valid(t *testing.T) {
	manager := NewJWTManager("test-secret-key", DefaultAccessTokenTTL, DefaultRefreshTokenTTL)

	token, _, err := manager.Issue("user-123", TokenKindAccess)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error verifying token: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("expected UserID 'user-123', got '%s'", claims.UserID)
	}
	if claims.Kind != TokenKindAccess {
		t.Errorf("expected kind 'access', got '%s'", claims.Kind)
	}
}

func TestVerify_Expired(t *testing.T) {
	manager := NewJWTManager("test-secret-key", DefaultAccessTokenTTL, DefaultRefreshTokenTTL)

	issuedAt := time.Now()
	manager.now = func() time.Time { return issuedAt }

	token, _, err := manager.Issue("user-123", TokenKindAccess)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	manager.now = func() time.Time { return issuedAt.Add(16 * time.Minute) }

	_, err = manager.Verify(token)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	manager := NewJWTManager("test-secret-key", DefaultAccessTokenTTL, DefaultRefreshTokenTTL)

	issuedAt := time.Now()
	manager.now = func() time.Time { return issuedAt }

	token, _, err := manager.Issue("user-123", TokenKindAccess)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	manager.now = func() time.Time { return issuedAt.Add(899 * time.Second) }
	if _, err := manager.Verify(token); err != nil {
		t.Errorf("expected token to be valid 1s before expiry, got %v", err)
	}

	manager.now = func() time.Time { return issuedAt.Add(901 * time.Second) }
	if _, err := manager.Verify(token); !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired 1s after expiry, got %v", err)
	}
}

func TestVerify_InvalidSignature(t *testing.T) {
	manager1 := NewJWTManager("secret-key-1", DefaultAccessTokenTTL, DefaultRefreshTokenTTL)
	manager2 := NewJWTManager("secret-key-2", DefaultAccessTokenTTL, DefaultRefreshTokenTTL)

	token, _, err := manager1.Issue("user-123", TokenKindAccess)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	_, err = manager2.Verify(token)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerify_TamperedToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key", DefaultAccessTokenTTL, DefaultRefreshTokenTTL)

	token, _, err := manager.Issue("user-123", TokenKindAccess)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	// Flip one byte in the payload segment.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err = manager.Verify(string(tampered))
	if !errors.Is(err, ErrInvalidSignature) && !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrInvalidSignature or ErrMalformed for tampered token, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	manager := NewJWTManager("test-secret-key", DefaultAccessTokenTTL, DefaultRefreshTokenTTL)

	_, err := manager.Verify("not-a-valid-token")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestVerify_EmptyToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key", DefaultAccessTokenTTL, DefaultRefreshTokenTTL)

	_, err := manager.Verify("")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestVerifyAccess_RejectsRefreshToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key", DefaultAccessTokenTTL, DefaultRefreshTokenTTL)

	refresh, _, err := manager.Issue("user-123", TokenKindRefresh)
	if err != nil {
		t.Fatalf("failed to issue refresh token: %v", err)
	}

	if _, err := manager.Verify(refresh); err != nil {
		t.Fatalf("refresh token should verify as a token: %v", err)
	}

	if _, err := manager.VerifyAccess(refresh); err == nil {
		t.Error("expected refresh token to be rejected as an access token")
	}
}

func TestIssue_RefreshLifetime(t *testing.T) {
	manager := NewJWTManager("test-secret-key", DefaultAccessTokenTTL, DefaultRefreshTokenTTL)

	issuedAt := time.Now()
	manager.now = func() time.Time { return issuedAt }

	_, expiresAt, err := manager.Issue("user-123", TokenKindRefresh)
	if err != nil {
		t.Fatalf("failed to issue refresh token: %v", err)
	}

	if got := expiresAt.Sub(issuedAt); got != 7*24*time.Hour {
		t.Errorf("expected refresh expiry 168h after issuance, got %v", got)
	}
}
