package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanRetrieve(t *testing.T) {
	member := uuid.Must(uuid.NewV7())
	stranger := uuid.Must(uuid.NewV7())

	publicDoc := &Document{
		Privacy: PublicDocument,
		Members: []Member{{UserID: member, Access: ReadAccess}},
	}
	privateDoc := &Document{
		Privacy: PrivateDocument,
		Members: []Member{{UserID: member, Access: ReadAccess}},
	}

	tests := []struct {
		name     string
		userID   uuid.UUID
		doc      *Document
		expected bool
	}{
		{"public document, anonymous caller", uuid.Nil, publicDoc, true},
		{"public document, non-member", stranger, publicDoc, true},
		{"public document, member", member, publicDoc, true},
		{"private document, anonymous caller", uuid.Nil, privateDoc, false},
		{"private document, non-member", stranger, privateDoc, false},
		{"private document, member", member, privateDoc, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanRetrieve(tt.userID, tt.doc))
		})
	}
}

func TestCanUpdate(t *testing.T) {
	reader := uuid.Must(uuid.NewV7())
	writer := uuid.Must(uuid.NewV7())
	admin := uuid.Must(uuid.NewV7())
	stranger := uuid.Must(uuid.NewV7())

	doc := &Document{
		Privacy: PublicDocument, // privacy must play no part in writes
		Members: []Member{
			{UserID: reader, Access: ReadAccess},
			{UserID: writer, Access: WriteAccess},
			{UserID: admin, Access: AdminAccess},
		},
	}

	assert.False(t, CanUpdate(uuid.Nil, doc), "anonymous caller never writes, even on public documents")
	assert.False(t, CanUpdate(stranger, doc))
	assert.False(t, CanUpdate(reader, doc))
	assert.True(t, CanUpdate(writer, doc))
	assert.True(t, CanUpdate(admin, doc), "admin includes write rights")
}

func TestIsAdmin(t *testing.T) {
	reader := uuid.Must(uuid.NewV7())
	writer := uuid.Must(uuid.NewV7())
	admin := uuid.Must(uuid.NewV7())

	doc := &Document{
		Privacy: PrivateDocument,
		Members: []Member{
			{UserID: reader, Access: ReadAccess},
			{UserID: writer, Access: WriteAccess},
			{UserID: admin, Access: AdminAccess},
		},
	}

	assert.False(t, IsAdmin(uuid.Nil, doc))
	assert.False(t, IsAdmin(reader, doc))
	assert.False(t, IsAdmin(writer, doc))
	assert.True(t, IsAdmin(admin, doc))
}
