// Package domain defines the token domain models for authentication flows.
// Tokens are short-lived credentials that back session authorization, email
// verification and password reset links.
package domain

import (
	apperrors "github.com/allisson/docshare/internal/errors"
)

// TokenType identifies the purpose a token was issued for. Lookups are always
// scoped by type, so an authorization token can never be replayed as a
// verification or password reset link.
type TokenType string

const (
	// AuthorizationToken backs bearer authentication for API requests.
	AuthorizationToken TokenType = "authorization"

	// VerificationToken backs email verification links.
	VerificationToken TokenType = "verification"

	// PasswordResetToken backs password reset links.
	PasswordResetToken TokenType = "passwordReset"
)

// ParseTokenType validates a raw string against the known token types.
// Unknown values are rejected before any repository call is made.
func ParseTokenType(raw string) (TokenType, error) {
	switch TokenType(raw) {
	case AuthorizationToken, VerificationToken, PasswordResetToken:
		return TokenType(raw), nil
	default:
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "unknown token type: "+raw)
	}
}
