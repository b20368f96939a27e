// Package http provides HTTP handlers for shared document operations.
// Retrieval is open to anonymous callers for public documents; every write
// goes through the capability gates in the use case layer.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/docshare/internal/auth/http"
	"github.com/allisson/docshare/internal/document/http/dto"
	docUseCase "github.com/allisson/docshare/internal/document/usecase"
	"github.com/allisson/docshare/internal/httputil"
	customValidation "github.com/allisson/docshare/internal/validation"
)

// DocumentHandler handles HTTP requests for document operations.
type DocumentHandler struct {
	documentUseCase docUseCase.DocumentUseCase
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler with required dependencies.
func NewDocumentHandler(documentUseCase docUseCase.DocumentUseCase, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentUseCase: documentUseCase,
		logger:          logger,
	}
}

// actorID resolves the calling user's ID from the request context.
// Anonymous callers resolve to uuid.Nil.
func actorID(c *gin.Context) uuid.UUID {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		return uuid.Nil
	}
	return user.ID
}

// documentIDParam parses the :id URL parameter.
func documentIDParam(c *gin.Context) (uuid.UUID, error) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid document id: must be a valid UUID")
	}
	return documentID, nil
}

// userIDParam parses the :userId URL parameter.
func userIDParam(c *gin.Context) (uuid.UUID, error) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id: must be a valid UUID")
	}
	return userID, nil
}

// CreateHandler creates a new document with the caller as sole admin member.
// POST /v1/documents - Requires authentication.
// Returns 201 Created with the document.
func (h *DocumentHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateDocumentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	doc, err := h.documentUseCase.Create(c.Request.Context(), actorID(c), req.Name, req.Privacy, req.Content)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapDocumentToResponse(doc))
}

// GetHandler retrieves a document by ID.
// GET /v1/documents/:id - Anonymous callers may read public documents.
// Returns 200 OK with the document.
func (h *DocumentHandler) GetHandler(c *gin.Context) {
	documentID, err := documentIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	doc, err := h.documentUseCase.Get(c.Request.Context(), actorID(c), documentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(doc))
}

// ListHandler retrieves public documents with pagination support.
// GET /v1/documents?offset=0&limit=50 - Open to anonymous callers.
// Returns 200 OK with the paginated document list.
func (h *DocumentHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	docs, err := h.documentUseCase.ListPublic(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentsToListResponse(docs))
}

// UpdateContentHandler replaces the document content wholesale.
// PUT /v1/documents/:id - Requires write access.
// Returns 200 OK with the updated document.
func (h *DocumentHandler) UpdateContentHandler(c *gin.Context) {
	documentID, err := documentIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	doc, err := h.documentUseCase.UpdateContent(c.Request.Context(), actorID(c), documentID, req.Content)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(doc))
}

// UpdatePrivacyHandler changes the document's privacy setting.
// PUT /v1/documents/:id/privacy - Requires admin access.
// Returns 200 OK with the updated document.
func (h *DocumentHandler) UpdatePrivacyHandler(c *gin.Context) {
	documentID, err := documentIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdatePrivacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	doc, err := h.documentUseCase.UpdatePrivacy(c.Request.Context(), actorID(c), documentID, req.Privacy)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(doc))
}

// AddMemberHandler grants or updates a member's access level.
// PUT /v1/documents/:id/members/:userId - Requires admin access; self-grants
// are rejected.
// Returns 200 OK with the updated document.
func (h *DocumentHandler) AddMemberHandler(c *gin.Context) {
	documentID, err := documentIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	targetID, err := userIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	doc, err := h.documentUseCase.AddMember(c.Request.Context(), actorID(c), documentID, targetID, req.Access)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(doc))
}

// RemoveMemberHandler revokes a member's access.
// DELETE /v1/documents/:id/members/:userId - Requires admin access.
// Returns 200 OK with the updated document.
func (h *DocumentHandler) RemoveMemberHandler(c *gin.Context) {
	documentID, err := documentIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	targetID, err := userIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	doc, err := h.documentUseCase.RemoveMember(c.Request.Context(), actorID(c), documentID, targetID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(doc))
}

// DeleteHandler deletes a document.
// DELETE /v1/documents/:id - Requires admin access.
// Returns 204 No Content.
func (h *DocumentHandler) DeleteHandler(c *gin.Context) {
	documentID, err := documentIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.documentUseCase.Delete(c.Request.Context(), actorID(c), documentID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
