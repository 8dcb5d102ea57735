package dto

import "github.com/contactkeeper/contacts-api/app/models"

// ContactCreateRequest represents the payload for creating a contact
type ContactCreateRequest struct {
	FirstName      string      `json:"first_name" validate:"required,max=255"`
	LastName       string      `json:"last_name" validate:"required,max=255"`
	Email          string      `json:"email" validate:"required,email,max=255"`
	Phone          string      `json:"phone" validate:"required,max=20"`
	Birthday       models.Date `json:"birthday" validate:"required"`
	AdditionalInfo *string     `json:"additional_info" validate:"omitempty,max=1024"`
}

// ContactUpdateRequest represents a partial update. Absent fields stay nil and
// the stored values are kept; present fields overwrite.
type ContactUpdateRequest struct {
	FirstName      *string      `json:"first_name" validate:"omitempty,max=255"`
	LastName       *string      `json:"last_name" validate:"omitempty,max=255"`
	Email          *string      `json:"email" validate:"omitempty,email,max=255"`
	Phone          *string      `json:"phone" validate:"omitempty,max=20"`
	Birthday       *models.Date `json:"birthday"`
	AdditionalInfo *string      `json:"additional_info" validate:"omitempty,max=1024"`
}

// UserCreateRequest represents the data needed to register a new user
type UserCreateRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

// VerifyEmailRequest carries the email verification token
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}
