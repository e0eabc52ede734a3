package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username       string  `json:"username" form:"username" validate:"required,min=3,max=50"`
	Email          string  `json:"email" form:"email" validate:"required,email"`
	Password       string  `json:"password" form:"password" validate:"required,min=6"`
	FullName       string  `json:"full_name" form:"full_name" validate:"omitempty,max=100"`
	ProfilePicture *string `json:"profile_picture" form:"profile_picture" validate:"omitempty,url"`
}

// TokenRequest accepts both OAuth2 password form posts and JSON bodies.
type TokenRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type UserResponse struct {
	Id             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name,omitempty"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName       *string `json:"full_name" validate:"omitempty,max=100"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url"`
}

type PreferenceRequest struct {
	PreferenceType  string `json:"preference_type" validate:"required,max=50"`
	PreferenceValue string `json:"preference_value" validate:"required"`
}

type PreferenceResponse struct {
	Id              uuid.UUID `json:"id"`
	UserId          uuid.UUID `json:"user_id"`
	PreferenceType  string    `json:"preference_type"`
	PreferenceValue string    `json:"preference_value"`
	UpdatedAt       time.Time `json:"updated_at"`
}
