package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when the configured cost is
// zero or out of range.
const DefaultCost = 12

// ErrPasswordMismatch reports that a plaintext does not match a stored digest.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// HashPassword derives a salted bcrypt digest from the plaintext. The cost
// is the work factor from configuration; each call generates a fresh salt,
// so hashing the same password twice yields different digests.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword compares a plaintext against a bcrypt digest. The comparison
// inside bcrypt is constant-time over the derived key, so a mismatch does not
// leak where the difference occurred. Returns ErrPasswordMismatch on mismatch
// and other errors for malformed digests.
func VerifyPassword(password, digest string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return fmt.Errorf("cryptox: verify password: %w", err)
}
