package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/phrazzld/finance-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a stored credential with its possible plaintext equivalent.
	// Returns nil on success, or ErrPasswordMismatch on mismatch.
	Compare(stored, password string) error
}

// PasswordHasher turns a plaintext password into the credential that is stored.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// PlainTextVerifier compares the stored credential with the supplied password
// by exact match. Credentials are stored as given.
type PlainTextVerifier struct{}

// NewPlainTextVerifier creates a new PlainTextVerifier.
func NewPlainTextVerifier() *PlainTextVerifier {
	return &PlainTextVerifier{}
}

// Compare implements PasswordVerifier using constant-time equality.
func (v *PlainTextVerifier) Compare(stored, password string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

// Hash implements PasswordHasher; the plaintext is stored unchanged.
func (v *PlainTextVerifier) Hash(password string) (string, error) {
	return password, nil
}

// BcryptVerifier implements PasswordVerifier and PasswordHasher using bcrypt.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier creates a new BcryptVerifier. A cost outside bcrypt's
// accepted range falls back to bcrypt.DefaultCost.
func NewBcryptVerifier(cost int) *BcryptVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{cost: cost}
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (v *BcryptVerifier) Compare(stored, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
		return ErrPasswordMismatch
	}
	return fmt.Errorf("failed to compare password hash: %w", err)
}

// Hash implements PasswordHasher using bcrypt.
func (v *BcryptVerifier) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Credentials groups the verifier and hasher of one password scheme.
type Credentials interface {
	PasswordVerifier
	PasswordHasher
}

// NewCredentials returns the credential handling for the configured scheme.
func NewCredentials(cfg config.AuthConfig) (Credentials, error) {
	switch cfg.PasswordScheme {
	case "", config.PasswordSchemePlain:
		return NewPlainTextVerifier(), nil
	case config.PasswordSchemeBcrypt:
		return NewBcryptVerifier(cfg.BcryptCost), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPasswordScheme, cfg.PasswordScheme)
	}
}
