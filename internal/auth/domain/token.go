package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is an ephemeral credential bound to a single user. Value is a 48-byte
// random secret in hexadecimal form (96 characters) and is unique across the
// store. ThrottleDate and ThrottleCounter implement the day-windowed issuance
// limiter: the counter tracks how many times the token was handed out during
// the UTC calendar day of ThrottleDate.
//
// Tokens expire a fixed interval after CreatedAt. Expiry is absolute, not
// sliding: repositories exclude expired rows from every lookup and the
// clean-expired-tokens command removes them permanently.
type Token struct {
	ID              uuid.UUID
	Value           string
	Type            TokenType
	UserID          uuid.UUID
	ThrottleDate    time.Time
	ThrottleCounter int
	CreatedAt       time.Time
}

// ExpiresAt returns the absolute expiry instant for the given TTL.
func (t *Token) ExpiresAt(ttl time.Duration) time.Time {
	return t.CreatedAt.Add(ttl)
}

// SameThrottleDay reports whether the token's throttle window covers the given
// instant. Window boundaries are UTC calendar days, so a token issued at
// 23:59 UTC leaves its window one minute later.
func (t *Token) SameThrottleDay(now time.Time) bool {
	ty, tm, td := t.ThrottleDate.UTC().Date()
	ny, nm, nd := now.UTC().Date()
	return ty == ny && tm == nm && td == nd
}
