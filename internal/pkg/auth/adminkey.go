package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidAdminKey = errors.New("invalid admin key")

// AdminKeyGuard validates the shared admin API key against its stored bcrypt
// hash. When no hash is configured every check fails, which keeps the admin
// surface closed by default.
type AdminKeyGuard struct {
	hash []byte
}

// NewAdminKeyGuard creates a guard from the configured bcrypt hash.
func NewAdminKeyGuard(hash string) *AdminKeyGuard {
	return &AdminKeyGuard{hash: []byte(hash)}
}

// Check compares the presented key with the stored hash.
func (g *AdminKeyGuard) Check(key string) error {
	if len(g.hash) == 0 || key == "" {
		return ErrInvalidAdminKey
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(key)); err != nil {
		return ErrInvalidAdminKey
	}
	return nil
}

// HashKey produces a bcrypt hash suitable for ADMIN_API_KEY_HASH.
func HashKey(key string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
