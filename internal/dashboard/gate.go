package dashboard

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized is returned for a wrong dashboard password.
var ErrUnauthorized = errors.New("incorrect dashboard password")

// Gate checks the dashboard password against a bcrypt hash.
type Gate struct {
	hash []byte
}

// NewGate uses hash when set, otherwise hashes password. With neither the
// gate rejects every password.
func NewGate(password, hash string) (*Gate, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		return &Gate{hash: []byte(hash)}, nil
	}
	if password == "" {
		return &Gate{}, nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &Gate{hash: h}, nil
}

// Enabled reports whether password login is configured.
func (g *Gate) Enabled() bool {
	return len(g.hash) > 0
}

// Check returns ErrUnauthorized unless password matches.
func (g *Gate) Check(password string) error {
	if !g.Enabled() || password == "" {
		return ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		return ErrUnauthorized
	}
	return nil
}
