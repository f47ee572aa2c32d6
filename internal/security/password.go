package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword runs the plaintext through bcrypt. DefaultCost is 10, which
// is the work factor the stored hashes assume.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)

	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword reports a non-nil error when the plaintext does not match
// the stored hash.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
