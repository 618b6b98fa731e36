package users

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier abstracts how a submitted password is checked against
// the stored credential, so the storage format can change without touching
// callers.
type CredentialVerifier interface {
	// Hash converts a plaintext password to its stored form.
	Hash(plain string) (string, error)

	// Verify reports whether plain matches the stored credential.
	Verify(plain, stored string) bool
}

// PlainVerifier stores and compares passwords as plaintext.
type PlainVerifier struct{}

func (PlainVerifier) Hash(plain string) (string, error) {
	return plain, nil
}

func (PlainVerifier) Verify(plain, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(plain), []byte(stored)) == 1
}

// BcryptVerifier stores passwords as bcrypt hashes.
type BcryptVerifier struct{}

func (BcryptVerifier) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (BcryptVerifier) Verify(plain, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

// NewVerifier returns the verifier for the given scheme, "plain" or "bcrypt".
func NewVerifier(scheme string) (CredentialVerifier, error) {
	switch scheme {
	case "", "plain":
		return PlainVerifier{}, nil
	case "bcrypt":
		return BcryptVerifier{}, nil
	default:
		return nil, fmt.Errorf("unknown credential scheme %q", scheme)
	}
}
