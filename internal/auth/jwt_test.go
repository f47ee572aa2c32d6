package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret-key", 7*24*time.Hour)

	token, err := m.Issue("user-123", "alice@example.com")

	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if token == "" {
		t.Fatalf("expected a non-empty token")
	}

	claims, err := m.Verify(token)

	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Fatalf("userID mismatch: got %q", claims.UserID)
	}

	// the embedded email must match the submitted one exactly
	if claims.Email != "alice@example.com" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}

	if claims.JTI == "" {
		t.Fatalf("expected a jti")
	}
}

func TestVerify_Expired(t *testing.T) {
	// negative ttl mints an already-expired token
	m := NewManager("test-secret-key", -1*time.Hour)

	token, err := m.Issue("user-123", "alice@example.com")

	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = m.Verify(token)

	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	token, err := issuer.Issue("user-123", "alice@example.com")

	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = verifier.Verify(token)

	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	m := NewManager("test-secret-key", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Verify(raw)

		if !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("Verify(%q): expected ErrTokenInvalid, got %v", raw, err)
		}
	}
}

func TestVerify_ExpiryWinsOverUserExistence(t *testing.T) {
	// expiry is checked during verification, before anyone can look the
	// user up, so an expired token is always an auth failure
	m := NewManager("test-secret-key", -time.Minute)

	token, _ := m.Issue("ghost-user", "ghost@example.com")

	_, err := m.Verify(token)

	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
