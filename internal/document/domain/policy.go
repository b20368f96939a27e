package domain

import (
	"github.com/google/uuid"
)

// Authorization predicates. These three functions are the only authorization
// gate in the system; they are pure and deterministic, never touch the store
// and evaluate in constant order. uuid.Nil identifies an anonymous caller.

// CanRetrieve reports whether the user may read the document.
// Public documents are world-readable, including for anonymous callers.
// Private documents require membership at any access level.
func CanRetrieve(userID uuid.UUID, doc *Document) bool {
	if doc.Privacy == PublicDocument {
		return true
	}
	if userID == uuid.Nil {
		return false
	}
	_, isMember := doc.MemberAccess(userID)
	return isMember
}

// CanUpdate reports whether the user may modify the document's content.
// Requires membership with write access or higher. Privacy plays no part:
// public documents are never world-writable.
func CanUpdate(userID uuid.UUID, doc *Document) bool {
	if userID == uuid.Nil {
		return false
	}
	access, isMember := doc.MemberAccess(userID)
	return isMember && access >= WriteAccess
}

// IsAdmin reports whether the user holds admin access on the document.
// Gates privacy changes, membership changes and deletion.
func IsAdmin(userID uuid.UUID, doc *Document) bool {
	if userID == uuid.Nil {
		return false
	}
	access, isMember := doc.MemberAccess(userID)
	return isMember && access == AdminAccess
}
