package service

import (
	"crypto/rand"
	"encoding/hex"

	apperrors "github.com/allisson/docshare/internal/errors"
)

// tokenValueBytes is the entropy of a token value. 48 random bytes hex-encode
// to a 96-character string, matching the tokens.value column width.
const tokenValueBytes = 48

// tokenService implements TokenService backed by crypto/rand.
type tokenService struct{}

// GenerateValue creates a new cryptographically secure 48-byte random value.
// Returns the value as a hexadecimal string.
func (t *tokenService) GenerateValue() (string, error) {
	randomBytes := make([]byte, tokenValueBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate random token value")
	}

	return hex.EncodeToString(randomBytes), nil
}

// NewTokenService creates a new TokenService instance.
func NewTokenService() TokenService {
	return &tokenService{}
}
