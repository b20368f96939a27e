// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/docshare/internal/validation"
)

// passwordRule is the strength policy shared by registration and reset.
var passwordRule = customValidation.PasswordStrength{
	MinLength:      8,
	RequireUpper:   true,
	RequireLower:   true,
	RequireNumber:  true,
	RequireSpecial: true,
}

// RegisterUserRequest contains the parameters for user registration.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Image    string `json:"image"`
}

// Validate checks if the register user request is valid.
func (r *RegisterUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 50),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
			passwordRule,
		),
		validation.Field(&r.Image,
			validation.Length(0, 1024),
		),
	)
}

// LoginRequest contains the credentials for authorization token issuance.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
		),
	)
}

// UpdateProfileRequest contains the partial profile update. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Image    *string `json:"image"`
}

// Validate checks if the update profile request is valid.
func (r *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.NilOrNotEmpty,
			validation.Length(1, 50),
		),
		validation.Field(&r.Image,
			validation.Length(0, 1024),
		),
	)
}

// ConfirmVerificationRequest carries the emailed verification token value.
type ConfirmVerificationRequest struct {
	Token string `json:"token" binding:"required"`
}

// Validate checks if the confirm verification request is valid.
func (r *ConfirmVerificationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// RequestPasswordResetRequest carries the email to send a reset token to.
type RequestPasswordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

// Validate checks if the request password reset request is valid.
func (r *RequestPasswordResetRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
	)
}

// ResetPasswordRequest carries the emailed reset token value and the
// replacement password.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Validate checks if the reset password request is valid.
func (r *ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required,
			passwordRule,
		),
	)
}
