package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/docshare/internal/errors"
)

func TestParsePrivacy(t *testing.T) {
	tests := []struct {
		raw      string
		expected Privacy
		wantErr  bool
	}{
		{"private", PrivateDocument, false},
		{"public", PublicDocument, false},
		{"Public", "", true},
		{"shared", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			privacy, err := ParsePrivacy(tt.raw)
			if tt.wantErr {
				assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, privacy)
		})
	}
}

func TestParseAccessLevel(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected AccessLevel
		wantErr  bool
	}{
		{"read", "read", ReadAccess, false},
		{"write", "write", WriteAccess, false},
		{"admin", "admin", AdminAccess, false},
		{"wrong case", "Admin", 0, true},
		{"numeric", "2", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access, err := ParseAccessLevel(tt.raw)
			if tt.wantErr {
				assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, access)
		})
	}
}

func TestAccessLevel_String(t *testing.T) {
	assert.Equal(t, "read", ReadAccess.String())
	assert.Equal(t, "write", WriteAccess.String())
	assert.Equal(t, "admin", AdminAccess.String())
	assert.Equal(t, "unknown(9)", AccessLevel(9).String())
}
