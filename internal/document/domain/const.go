// Package domain defines the shared document model and its authorization policy.
package domain

import (
	"strconv"

	apperrors "github.com/allisson/docshare/internal/errors"
)

// Privacy controls who may read a document. Public documents are readable by
// anyone, including anonymous callers; private documents only by members.
// Privacy never affects writes.
type Privacy string

const (
	PrivateDocument Privacy = "private"
	PublicDocument  Privacy = "public"
)

// ParsePrivacy validates a raw string against the known privacy values.
// Unknown values are rejected before any comparison or store call.
func ParsePrivacy(raw string) (Privacy, error) {
	switch Privacy(raw) {
	case PrivateDocument, PublicDocument:
		return Privacy(raw), nil
	default:
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "unknown privacy: "+raw)
	}
}

// AccessLevel is an ordered capability tier. Higher levels include every
// lower level's rights: admins can write, writers can read.
type AccessLevel int

const (
	ReadAccess  AccessLevel = 0
	WriteAccess AccessLevel = 1
	AdminAccess AccessLevel = 2
)

// ParseAccessLevel validates a raw access name against the known levels.
// The API speaks level names; the ordered integers stay internal.
func ParseAccessLevel(raw string) (AccessLevel, error) {
	switch raw {
	case "read":
		return ReadAccess, nil
	case "write":
		return WriteAccess, nil
	case "admin":
		return AdminAccess, nil
	default:
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown access level: "+raw)
	}
}

// String returns a human-readable name for logging and responses.
func (a AccessLevel) String() string {
	switch a {
	case ReadAccess:
		return "read"
	case WriteAccess:
		return "write"
	case AdminAccess:
		return "admin"
	default:
		return "unknown(" + strconv.Itoa(int(a)) + ")"
	}
}
