package dto

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/docshare/internal/auth/domain"
	"github.com/allisson/docshare/internal/user/domain"
)

// UserResponse represents a user in API responses. The password hash never
// leaves the domain layer.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Image     string    `json:"image"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUserResponse represents another user's profile. Email stays private.
type PublicUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Image    string `json:"image"`
}

// MeResponse is the authenticated profile together with the IDs of the
// documents the user belongs to.
type MeResponse struct {
	UserResponse
	DocumentIDs []string `json:"document_ids"`
}

// LoginResponse carries a freshly issued authorization token.
type LoginResponse struct {
	Token string `json:"token"`
}

// MapUserToResponse converts a domain user to an API response.
func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Image:     user.Image,
		Verified:  user.Verified,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// MapUserToPublicResponse converts a domain user to a public profile response.
func MapUserToPublicResponse(user *domain.User) PublicUserResponse {
	return PublicUserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Image:    user.Image,
	}
}

// MapUserToMeResponse converts a domain user and their document memberships to
// the authenticated profile response.
func MapUserToMeResponse(user *domain.User, documentIDs []uuid.UUID) MeResponse {
	ids := make([]string, 0, len(documentIDs))
	for _, documentID := range documentIDs {
		ids = append(ids, documentID.String())
	}

	return MeResponse{
		UserResponse: MapUserToResponse(user),
		DocumentIDs:  ids,
	}
}

// MapTokenToLoginResponse converts an issued authorization token to the login
// response.
func MapTokenToLoginResponse(token *authDomain.Token) LoginResponse {
	return LoginResponse{Token: token.Value}
}
