package dto

import (
	"time"

	"github.com/contactkeeper/contacts-api/app/models"
)

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID             int64   `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Birthday       string  `json:"birthday"`
	AdditionalInfo *string `json:"additional_info"`
}

// UserResponse represents user data in API responses (excludes sensitive fields)
type UserResponse struct {
	ID         int64   `json:"id"`
	Email      string  `json:"email"`
	IsActive   bool    `json:"is_active"`
	IsVerified bool    `json:"is_verified"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// TokenResponse is the body of a successful POST /token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AvatarResponse is the body of a successful avatar upload
type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

// MessageResponse wraps a human-readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func NewContactResponse(c *models.Contact) ContactResponse {
	resp := ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Birthday:  c.Birthday.String(),
	}
	if c.AdditionalInfo.Valid {
		info := c.AdditionalInfo.String
		resp.AdditionalInfo = &info
	}
	return resp
}

func NewContactListResponse(contacts []models.Contact) []ContactResponse {
	resp := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		resp = append(resp, NewContactResponse(&contacts[i]))
	}
	return resp
}

func NewUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
	if u.AvatarURL.Valid {
		url := u.AvatarURL.String
		resp.AvatarURL = &url
	}
	return resp
}
