package dto

import "namdo-bot-be/pkg/scoring"

type FestivalRecommendation struct {
	Rank           int               `json:"rank"`
	ContentId      string            `json:"content_id"`
	Name           string            `json:"name"`
	Location       string            `json:"location"`
	Description    string            `json:"description"`
	ImageURL       string            `json:"image_url"`
	Reason         string            `json:"reason"`
	XAIExplanation string            `json:"xai_explanation"`
	Score          int               `json:"score"`
	ScoreBreakdown scoring.Breakdown `json:"score_breakdown"`
	PetFriendly    bool              `json:"pet_friendly"`
}

type RecommendationResponse struct {
	Recommendations     []FestivalRecommendation `json:"recommendations"`
	ConversationSummary string                   `json:"conversation_summary"`
	TotalTurns          int                      `json:"total_turns"`
}

type FinalizeRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

type TopRecommendation struct {
	Title     string   `json:"title"`
	Region    string   `json:"region"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Location  string   `json:"location"`
	Score     int      `json:"score"`
	Reasons   []string `json:"reasons"`
	WhyBest   string   `json:"why_best"`
	Image     string   `json:"image,omitempty"`
	Tel       string   `json:"tel,omitempty"`
}

type AlternativeRecommendation struct {
	Rank           int      `json:"rank"`
	Title          string   `json:"title"`
	Region         string   `json:"region"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Location       string   `json:"location"`
	Score          int      `json:"score"`
	Reasons        []string `json:"reasons"`
	WhyAlternative string   `json:"why_alternative"`
	Image          string   `json:"image,omitempty"`
	Tel            string   `json:"tel,omitempty"`
}

type FinalizeResponse struct {
	SessionId                  string                      `json:"session_id"`
	UserProfileSummary         string                      `json:"user_profile_summary"`
	RecommendationSummary      string                      `json:"recommendation_summary"`
	TopRecommendation          *TopRecommendation          `json:"top_recommendation"`
	AlternativeRecommendations []AlternativeRecommendation `json:"alternative_recommendations"`
	ReasoningExplanation       string                      `json:"reasoning_explanation"`
	FinalMessage               string                      `json:"final_message"`
	Timestamp                  string                      `json:"timestamp"`
}

// FinalizeNarrative is the JSON object the LLM is asked to return. Scores and
// festival facts always come from the scorer, never from the model.
type FinalizeNarrative struct {
	UserProfileSummary    string            `json:"user_profile_summary"`
	RecommendationSummary string            `json:"recommendation_summary"`
	WhyBest               string            `json:"why_best"`
	WhyAlternatives       map[string]string `json:"why_alternatives"`
	ReasoningExplanation  string            `json:"reasoning_explanation"`
	FinalMessage          string            `json:"final_message"`
}

// ExplanationSet is the LLM output for per-festival explanations, keyed by content id.
type ExplanationSet struct {
	Explanations map[string]string `json:"explanations"`
}
