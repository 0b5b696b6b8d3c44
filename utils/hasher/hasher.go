package hasher

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashing wraps any failure of the underlying hash function.
var ErrHashing = errors.New("hasher: hashing failed")

type Hasher interface {
	// Hash returns a salted one-way hash of plaintext.
	Hash(plaintext string) (string, error)
	// Compare returns nil when plaintext matches hash.
	Compare(hash, plaintext string) error
}

type bcryptHasher struct {
	cost int
}

// New returns a bcrypt Hasher. An out-of-range cost falls back to bcrypt.DefaultCost.
func New(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashing, err)
	}
	return string(hashed), nil
}

func (h *bcryptHasher) Compare(hash, plaintext string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
}
