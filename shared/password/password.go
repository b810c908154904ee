// Package password hashes and checks account credentials with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrInvalidPassword = errors.New("invalid password")
)

// Cost is the bcrypt work factor used for new hashes. Tests lower it.
var Cost = bcrypt.DefaultCost

func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify returns ErrInvalidPassword when plain does not match hashed.
func Verify(plain, hashed string) error {
	if plain == "" || hashed == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidPassword
	default:
		return fmt.Errorf("verify password: %w", err)
	}
}

// NeedsRehash reports whether hashed was produced with a cost other than Cost.
func NeedsRehash(hashed string) bool {
	cost, err := bcrypt.Cost([]byte(hashed))
	if err != nil {
		return true
	}

	return cost != Cost
}
