package auth

import (
	"errors"
	"strings"
)

var (
	ErrMissingAPIKey = errors.New("api key required")
	ErrInvalidAPIKey = errors.New("invalid api key")
)

// KeyVerifier authenticates the calling host. When no hash is configured every request
// is allowed.
type KeyVerifier struct {
	hash   string
	hasher SecretHasher
}

// NewKeyVerifier builds a verifier for a stored bcrypt hash.
func NewKeyVerifier(hash string, hasher SecretHasher) *KeyVerifier {
	return &KeyVerifier{hash: strings.TrimSpace(hash), hasher: hasher}
}

// Enabled reports whether a key is required.
func (v *KeyVerifier) Enabled() bool {
	return v != nil && v.hash != ""
}

// Verify checks a presented key.
func (v *KeyVerifier) Verify(key string) error {
	if !v.Enabled() {
		return nil
	}
	if key == "" {
		return ErrMissingAPIKey
	}
	if err := v.hasher.Compare(v.hash, key); err != nil {
		return ErrInvalidAPIKey
	}
	return nil
}
