// Package http provides HTTP handlers for user account operations.
// Registration, login and the password flows are open; profile routes require
// an authenticated caller.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/docshare/internal/auth/domain"
	authHTTP "github.com/allisson/docshare/internal/auth/http"
	authUseCase "github.com/allisson/docshare/internal/auth/usecase"
	"github.com/allisson/docshare/internal/httputil"
	"github.com/allisson/docshare/internal/user/http/dto"
	userUseCase "github.com/allisson/docshare/internal/user/usecase"
	customValidation "github.com/allisson/docshare/internal/validation"
)

// UserHandler handles HTTP requests for user account operations.
type UserHandler struct {
	userUseCase  userUseCase.UserUseCase
	tokenUseCase authUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(
	userUC userUseCase.UserUseCase,
	tokenUC authUseCase.TokenUseCase,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase:  userUC,
		tokenUseCase: tokenUC,
		logger:       logger,
	}
}

// callerID resolves the authenticated user's ID from the request context.
// Routes using it sit behind RequireUserMiddleware, so a missing user is a
// wiring error surfaced as uuid.Nil and rejected downstream.
func callerID(c *gin.Context) uuid.UUID {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		return uuid.Nil
	}
	return user.ID
}

// RegisterHandler creates a new user account and queues the verification email.
// POST /v1/users - Open route.
// Returns 201 Created with the user.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Register(c.Request.Context(), userUseCase.RegisterUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Image:    req.Image,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToResponse(user))
}

// LoginHandler verifies credentials and issues a fresh authorization token.
// Logins are not day-limited; the issuance throttle covers the email-sending
// flows only.
// POST /v1/login - Open route.
// Returns 200 OK with the token value.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	token, err := h.tokenUseCase.Create(c.Request.Context(), user.ID, authDomain.AuthorizationToken)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenToLoginResponse(token))
}

// MeHandler returns the authenticated profile with document memberships.
// GET /v1/me - Requires authentication.
// Returns 200 OK with the profile.
func (h *UserHandler) MeHandler(c *gin.Context) {
	user, documentIDs, err := h.userUseCase.Me(c.Request.Context(), callerID(c))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToMeResponse(user, documentIDs))
}

// UpdateMeHandler applies a partial profile update.
// PUT /v1/me - Requires authentication.
// Returns 200 OK with the updated profile.
func (h *UserHandler) UpdateMeHandler(c *gin.Context) {
	var req dto.UpdateProfileRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Update(c.Request.Context(), callerID(c), userUseCase.UpdateUserInput{
		Username: req.Username,
		Image:    req.Image,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// DeleteMeHandler removes the account and invalidates every outstanding token.
// DELETE /v1/me - Requires authentication.
// Returns 204 No Content.
func (h *UserHandler) DeleteMeHandler(c *gin.Context) {
	if err := h.userUseCase.Delete(c.Request.Context(), callerID(c)); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// GetUserHandler returns another user's public profile.
// GET /v1/users/:id - Open route.
// Returns 200 OK with the public profile.
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid user id: must be a valid UUID"), h.logger)
		return
	}

	user, err := h.userUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToPublicResponse(user))
}

// RequestVerificationHandler requests a fresh verification email.
// POST /v1/users/verification - Requires authentication, exempt from the
// verified gate by nature.
// Returns 202 Accepted.
func (h *UserHandler) RequestVerificationHandler(c *gin.Context) {
	if err := h.userUseCase.RequestVerification(c.Request.Context(), callerID(c)); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Verification email requested"})
}

// ConfirmVerificationHandler confirms the account behind a verification token.
// PUT /v1/users/verification - Open route; the token value is the credential.
// Returns 200 OK.
func (h *UserHandler) ConfirmVerificationHandler(c *gin.Context) {
	var req dto.ConfirmVerificationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.userUseCase.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

// RequestPasswordResetHandler requests a password reset email. The response is
// identical whether or not the email maps to an account.
// POST /v1/users/password - Open route.
// Returns 202 Accepted.
func (h *UserHandler) RequestPasswordResetHandler(c *gin.Context) {
	var req dto.RequestPasswordResetRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.userUseCase.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Password reset requested"})
}

// ResetPasswordHandler replaces the password behind a reset token.
// PUT /v1/users/password - Open route; the token value is the credential.
// Returns 200 OK.
func (h *UserHandler) ResetPasswordHandler(c *gin.Context) {
	var req dto.ResetPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.userUseCase.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset"})
}
