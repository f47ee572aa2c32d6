package security

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw123")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hash == "pw123" || hash == "" {
		t.Fatalf("hash should not echo the plaintext")
	}

	// bcrypt hashes are self-describing
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}

	if err := CheckPassword(hash, "pw123"); err != nil {
		t.Fatalf("check with correct password failed: %v", err)
	}

	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatalf("check with wrong password should fail")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("two hashes of the same password should differ (salt)")
	}
}
