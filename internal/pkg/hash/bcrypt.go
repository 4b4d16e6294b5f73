// Package hash implements the password hashing contract on top of bcrypt.
package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMissingArgument is returned when Hash or Verify receives an empty
// plaintext or hash. The empty string must never verify or be hashed
// silently; callers validate presence first and treat this as a 400-class
// failure, not a credential mismatch.
var ErrMissingArgument = errors.New("hash: missing argument")

// BcryptHasher hashes passwords with bcrypt at a configurable cost.
// Each call embeds a fresh salt, so two hashes of the same password differ.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. Costs outside
// bcrypt's valid range fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrMissingArgument
	}
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h *BcryptHasher) Verify(plaintext, hashed string) (bool, error) {
	if plaintext == "" || hashed == "" {
		return false, ErrMissingArgument
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		// Malformed hash, truncated input, etc. Surface it.
		return false, err
	}
}
