// Package events defines event types and structures for journey change notifications.
package events

import (
	"time"

	"github.com/formforge/formforge/pkg/models"
)

type EventType string

const Topic = "formforge.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	JourneyCreatedEvent EventType = "journey.created"
	JourneySavedEvent   EventType = "journey.saved"
	JourneyDeletedEvent EventType = "journey.deleted"
)

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Journey   string    `json:"journey"`
	Actor     string    `json:"actor,omitempty"`
}

type JourneyCreated struct {
	BaseEvent

	JourneyType models.JourneyType `json:"journey_type"`
	FieldCount  int                `json:"field_count"`
}

func (j JourneyCreated) GetType() EventType {
	return JourneyCreatedEvent
}

type JourneySaved struct {
	BaseEvent

	FieldCount int `json:"field_count"`
}

func (j JourneySaved) GetType() EventType {
	return JourneySavedEvent
}

type JourneyDeleted struct {
	BaseEvent
}

func (j JourneyDeleted) GetType() EventType {
	return JourneyDeletedEvent
}
