// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	docDomain "github.com/allisson/docshare/internal/document/domain"
)

// ListDocumentsResponse represents a paginated list of documents in API responses.
type ListDocumentsResponse struct {
	Data []DocumentResponse `json:"data"`
}

// MapDocumentsToListResponse converts a slice of domain documents to a list response.
func MapDocumentsToListResponse(docs []*docDomain.Document) ListDocumentsResponse {
	data := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		data = append(data, MapDocumentToResponse(doc))
	}

	return ListDocumentsResponse{
		Data: data,
	}
}
