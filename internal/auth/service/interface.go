// Package service provides technical services for token generation.
package service

// TokenService defines operations for generating token values.
// Implementations must use cryptographically secure random generation.
type TokenService interface {
	// GenerateValue creates a new cryptographically secure random token value.
	// The value is hex-encoded and unique enough to serve as a bearer
	// credential without additional hashing.
	GenerateValue() (string, error)
}
