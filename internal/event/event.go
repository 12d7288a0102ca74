// Package event provides the synchronous publish/subscribe bus that
// decouples the engine from the hosts observing it. Delivery happens on
// the publisher's goroutine in subscription priority order, so handlers
// observing reveal progress see samples in publish order.
package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/revealkit/internal/event/topic"
)

// Event is an immutable typed event.
type Event[T any] struct {
	// Type is the hierarchical event type (e.g., "reveal.progress").
	Type topic.Topic

	// Payload contains the event-specific data.
	Payload T

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata is attached to every event.
type Metadata struct {
	// ID uniquely identifies this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the module that published the event.
	Source string
}

// New creates an event with generated metadata.
func New[T any](eventType topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:    eventType,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// EventTopic returns the event's topic for type-erased handling.
func (e Event[T]) EventTopic() topic.Topic {
	return e.Type
}

// EventMetadata returns the event's metadata for type-erased handling.
func (e Event[T]) EventMetadata() Metadata {
	return e.Metadata
}

// TopicProvider is implemented by types that can provide their topic.
// Anything published on the bus must implement it.
type TopicProvider interface {
	EventTopic() topic.Topic
}

// MetadataProvider is implemented by types carrying event metadata.
type MetadataProvider interface {
	EventMetadata() Metadata
}
