// Package password wraps bcrypt hashing behind a small, cost-configurable API.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// Hasher produces and verifies bcrypt password digests.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given bcrypt cost. Costs outside the
// range bcrypt accepts fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted bcrypt digest from the plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Compare reports whether the plaintext matches the stored digest.
// Returns bcrypt.ErrMismatchedHashAndPassword on mismatch.
func (h *Hasher) Compare(digest, plaintext string) error {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
}
