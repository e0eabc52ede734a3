package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Conversation struct {
	Id                     uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SessionId              string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserId                 uuid.UUID      `gorm:"type:uuid;not null;index"`
	Phase                  string         `gorm:"type:varchar(50);not null;default:'initial'"`
	Status                 string         `gorm:"type:varchar(20);not null;default:'active'"`
	TravelPeriod           string         `gorm:"type:varchar(50);not null"`
	CompanionType          string         `gorm:"type:varchar(50);not null"`
	HasPets                bool           `gorm:"not null;default:false"`
	ChildAgeGroup          *string        `gorm:"type:varchar(50)"`
	EnergyPreference       string         `gorm:"type:varchar(100)"`
	InterestFocus          string         `gorm:"type:varchar(100)"`
	AdditionalRequirements string         `gorm:"type:text"`
	FinalResult            datatypes.JSON
	CompletedAt            *time.Time
	CreatedAt              time.Time `gorm:"autoCreateTime"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime"`

	Messages []ConversationMessage `gorm:"foreignKey:ConversationId;constraint:OnDelete:CASCADE"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type ConversationMessage struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConversationId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_turn"`
	Role           string    `gorm:"type:varchar(20);not null"`
	Content        string    `gorm:"type:text;not null"`
	TurnNumber     int       `gorm:"not null;uniqueIndex:idx_conversation_turn"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (ConversationMessage) TableName() string {
	return "conversation_messages"
}
