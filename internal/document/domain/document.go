package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Member associates a user with an access level on a document.
type Member struct {
	UserID uuid.UUID   `json:"user_id"`
	Access AccessLevel `json:"access"`
}

// Document is a shared JSON payload with an explicit member list. Content is
// opaque to the backend; no schema is enforced beyond being valid JSON.
// Version implements optimistic concurrency: every successful update bumps it,
// and writers must present the version they read.
type Document struct {
	ID        uuid.UUID
	Name      string
	Privacy   Privacy
	Content   json.RawMessage
	Members   []Member
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MemberAccess returns the user's access level and whether the user is a
// member at all. Membership is exact ID equality.
func (d *Document) MemberAccess(userID uuid.UUID) (AccessLevel, bool) {
	for _, member := range d.Members {
		if member.UserID == userID {
			return member.Access, true
		}
	}
	return 0, false
}

// SetMember updates an existing member's access in place or appends a new
// member. Returns true when the member was already present.
func (d *Document) SetMember(userID uuid.UUID, access AccessLevel) bool {
	for i, member := range d.Members {
		if member.UserID == userID {
			d.Members[i].Access = access
			return true
		}
	}
	d.Members = append(d.Members, Member{UserID: userID, Access: access})
	return false
}

// RemoveMember removes the user from the member list. Returns false when the
// user was not a member; the list is unchanged in that case.
func (d *Document) RemoveMember(userID uuid.UUID) bool {
	for i, member := range d.Members {
		if member.UserID == userID {
			d.Members = append(d.Members[:i], d.Members[i+1:]...)
			return true
		}
	}
	return false
}
