package entity

import (
	"time"

	"github.com/google/uuid"
)

type ConversationStatus string

const (
	ConversationStatusActive    ConversationStatus = "active"
	ConversationStatusCompleted ConversationStatus = "completed"

	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

type Conversation struct {
	Id                     uuid.UUID
	SessionId              string
	UserId                 uuid.UUID
	Phase                  string
	Status                 ConversationStatus
	TravelPeriod           string
	CompanionType          string
	HasPets                bool
	ChildAgeGroup          *string
	EnergyPreference       string
	InterestFocus          string
	AdditionalRequirements string
	// FinalResult holds the JSON of the last finalized recommendation.
	FinalResult []byte
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ConversationMessage struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           string
	Content        string
	TurnNumber     int
	CreatedAt      time.Time
}
