package dto

import "time"

type InitializeChatRequest struct {
	TravelPeriod  string  `json:"travel_period" validate:"required"`
	CompanionType string  `json:"companion_type" validate:"required"`
	HasPets       bool    `json:"has_pets"`
	ChildAgeGroup *string `json:"child_age_group"`
}

type ChatRequest struct {
	SessionId      string `json:"session_id" validate:"required"`
	UserResponse   string `json:"user_response"`
	SelectedOption string `json:"selected_option"`
}

type ChatResponse struct {
	SessionId  string   `json:"session_id"`
	Message    string   `json:"message"`
	TurnNumber int      `json:"turn_number"`
	Phase      string   `json:"phase"`
	Options    []string `json:"options"`
	IsFinal    bool     `json:"is_final"`
}

type GreetingRequest struct {
	TravelPeriod  string `json:"travel_period" validate:"required"`
	CompanionType string `json:"companion_type" validate:"required"`
}

type GreetingResponse struct {
	GreetingMessage string   `json:"greeting_message"`
	NextQuestion    string   `json:"next_question"`
	Choices         []string `json:"choices"`
	SessionId       string   `json:"session_id"`
}

type ConversationSummary struct {
	SessionId        string     `json:"session_id"`
	Phase            string     `json:"phase"`
	Status           string     `json:"status"`
	TravelPeriod     string     `json:"travel_period"`
	CompanionType    string     `json:"companion_type"`
	HasPets          bool       `json:"has_pets"`
	EnergyPreference string     `json:"energy_preference,omitempty"`
	InterestFocus    string     `json:"interest_focus,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

type MessageResponse struct {
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	TurnNumber int       `json:"turn_number"`
	CreatedAt  time.Time `json:"created_at"`
}
