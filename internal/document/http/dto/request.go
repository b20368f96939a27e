// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/docshare/internal/validation"
)

// CreateDocumentRequest contains the parameters for creating a document.
type CreateDocumentRequest struct {
	Name    string          `json:"name" binding:"required"`
	Privacy string          `json:"privacy" binding:"required"`
	Content json.RawMessage `json:"content" binding:"required"`
}

// Validate checks if the create document request is valid.
func (r *CreateDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Privacy,
			validation.Required,
			validation.In("private", "public"),
		),
		validation.Field(&r.Content,
			validation.Required,
		),
	)
}

// UpdateContentRequest contains the replacement content for a document.
// The replace is wholesale, never a merge.
type UpdateContentRequest struct {
	Content json.RawMessage `json:"content" binding:"required"`
}

// Validate checks if the update content request is valid.
func (r *UpdateContentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content,
			validation.Required,
		),
	)
}

// UpdatePrivacyRequest contains the new privacy setting for a document.
type UpdatePrivacyRequest struct {
	Privacy string `json:"privacy" binding:"required"`
}

// Validate checks if the update privacy request is valid.
func (r *UpdatePrivacyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Privacy,
			validation.Required,
			validation.In("private", "public"),
		),
	)
}

// AddMemberRequest contains the access level name for a member grant or
// update. The target user ID comes from the URL, not the request body.
type AddMemberRequest struct {
	Access string `json:"access" binding:"required"`
}

// Validate checks if the add member request is valid.
func (r *AddMemberRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Access,
			validation.Required,
			validation.In("read", "write", "admin"),
		),
	)
}
