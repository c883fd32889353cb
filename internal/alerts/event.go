package alerts

import (
	"time"

	"github.com/google/uuid"
)

// Topic constants for alert events.
const (
	// TopicInputAlert carries one event per rejected input.
	TopicInputAlert = "input.alert"
	// TopicSweepSummary carries the periodic block list summaries.
	TopicSweepSummary = "sweep.summary"
)

// AllTopics lists every topic the hub bridge subscribes to.
var AllTopics = []string{
	TopicInputAlert,
	TopicSweepSummary,
}

// Event is one alert published through the broker. Events are ephemeral:
// they are forwarded to currently-connected observers and never persisted.
type Event struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	EmittedAt time.Time `json:"emitted_at"`
}

// NewEvent creates an Event with a generated UUID and the current timestamp.
func NewEvent(topic, title, message string) Event {
	return Event{
		ID:        uuid.New().String(),
		Topic:     topic,
		Title:     title,
		Message:   message,
		EmittedAt: time.Now().UTC(),
	}
}

// EventHandler is a callback invoked when a subscribed event is received.
type EventHandler func(event Event)
