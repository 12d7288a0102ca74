package events

import (
	"github.com/dshills/revealkit/internal/event"
	"github.com/dshills/revealkit/internal/event/topic"
)

// Application lifecycle topics.
const (
	// TopicAppStarted signals the event loop is running.
	TopicAppStarted topic.Topic = "app.started"

	// TopicAppStopping signals shutdown has begun.
	TopicAppStopping topic.Topic = "app.stopping"

	// TopicAppResized carries surface dimension changes.
	TopicAppResized topic.Topic = "app.resized"

	// TopicAppInputDropped signals an input event dropped because the
	// input channel was full.
	TopicAppInputDropped topic.Topic = "app.input.dropped"
)

// LifecyclePayload is the empty payload for start/stop events.
type LifecyclePayload struct{}

// NewLifecycle creates a lifecycle event on the given topic.
func NewLifecycle(t topic.Topic, source string) event.Event[LifecyclePayload] {
	return event.New(t, LifecyclePayload{}, source)
}

// ResizedPayload carries the new surface dimensions.
type ResizedPayload struct {
	Width  int
	Height int
}

// NewResized creates an app.resized event.
func NewResized(width, height int, source string) event.Event[ResizedPayload] {
	return event.New(TopicAppResized, ResizedPayload{Width: width, Height: height}, source)
}

// InputDroppedPayload counts drops since the last report.
type InputDroppedPayload struct {
	Count uint64
}

// NewInputDropped creates an app.input.dropped event.
func NewInputDropped(count uint64, source string) event.Event[InputDroppedPayload] {
	return event.New(TopicAppInputDropped, InputDroppedPayload{Count: count}, source)
}
