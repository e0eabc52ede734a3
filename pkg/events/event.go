package events

import (
	"context"
	"time"
)

const (
	TypeConversationCompleted = "CONVERSATION_COMPLETED"
	TypeFestivalSyncCompleted = "FESTIVAL_SYNC_COMPLETED"
	TypeRecommendationServed  = "RECOMMENDATION_SERVED"
)

type Event interface {
	// EventType returns the unique code for this event (e.g., "CONVERSATION_COMPLETED").
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// Publisher forwards events to an external bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

// Discard drops every event. Used when no bus is reachable.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }
