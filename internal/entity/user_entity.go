package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id             uuid.UUID
	Username       string
	Email          string
	PasswordHash   string
	FullName       string
	ProfilePicture *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type UserPreference struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	PreferenceType  string
	PreferenceValue string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
