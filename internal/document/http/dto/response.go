// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/json"
	"time"

	docDomain "github.com/allisson/docshare/internal/document/domain"
)

// MemberResponse represents a document member in API responses. Access is
// the level name ("read", "write", "admin"), mirroring the request format.
type MemberResponse struct {
	UserID string `json:"user_id"`
	Access string `json:"access"`
}

// DocumentResponse represents a document in API responses. The full member
// list is only visible to callers who can already retrieve the document.
type DocumentResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Privacy   string           `json:"privacy"`
	Content   json.RawMessage  `json:"content"`
	Members   []MemberResponse `json:"members"`
	Version   int64            `json:"version"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// MapDocumentToResponse converts a domain document to an API response.
func MapDocumentToResponse(doc *docDomain.Document) DocumentResponse {
	members := make([]MemberResponse, 0, len(doc.Members))
	for _, member := range doc.Members {
		members = append(members, MemberResponse{
			UserID: member.UserID.String(),
			Access: member.Access.String(),
		})
	}

	return DocumentResponse{
		ID:        doc.ID.String(),
		Name:      doc.Name,
		Privacy:   string(doc.Privacy),
		Content:   doc.Content,
		Members:   members,
		Version:   doc.Version,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
