package dto

import "github.com/google/uuid"

// ConversationCompletedMessage is the in-process payload published when a
// conversation reaches the completed phase.
type ConversationCompletedMessage struct {
	ConversationId   uuid.UUID `json:"conversation_id"`
	SessionId        string    `json:"session_id"`
	UserId           uuid.UUID `json:"user_id"`
	CompanionType    string    `json:"companion_type"`
	EnergyPreference string    `json:"energy_preference"`
	InterestFocus    string    `json:"interest_focus"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}
