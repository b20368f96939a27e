package domain

import (
	"github.com/allisson/docshare/internal/errors"
)

// Document domain errors.
var (
	// ErrDocumentNotFound indicates the requested document does not exist.
	ErrDocumentNotFound = errors.Wrap(errors.ErrNotFound, "document not found")

	// ErrDocumentAlreadyExists indicates a document with the same name already exists.
	ErrDocumentAlreadyExists = errors.Wrap(errors.ErrConflict, "document already exists")

	// ErrMemberNotFound indicates the target user is not a member of the document.
	ErrMemberNotFound = errors.Wrap(errors.ErrNotFound, "member not found")

	// ErrVersionConflict indicates a concurrent writer updated the document
	// between read and write.
	ErrVersionConflict = errors.Wrap(errors.ErrConflict, "document version changed concurrently")
)
