package events

import (
	"github.com/dshills/revealkit/internal/event"
	"github.com/dshills/revealkit/internal/event/topic"
	"github.com/dshills/revealkit/internal/pointer"
	"github.com/dshills/revealkit/internal/reveal"
)

// Pointer input topics, one per phase.
const (
	TopicPointerDown   topic.Topic = "pointer.down"
	TopicPointerMove   topic.Topic = "pointer.move"
	TopicPointerUp     topic.Topic = "pointer.up"
	TopicPointerCancel topic.Topic = "pointer.cancel"
)

// PointerPayload carries one raw pointer sample and how the engine
// routed it.
type PointerPayload struct {
	Event   pointer.Event
	Routing reveal.Routing
}

// NewPointer creates a pointer event on the topic matching its phase.
func NewPointer(ev pointer.Event, routing reveal.Routing, source string) event.Event[PointerPayload] {
	return event.New(pointerTopic(ev.Phase), PointerPayload{Event: ev, Routing: routing}, source)
}

func pointerTopic(phase pointer.Phase) topic.Topic {
	switch phase {
	case pointer.PhaseDown:
		return TopicPointerDown
	case pointer.PhaseMove:
		return TopicPointerMove
	case pointer.PhaseUp:
		return TopicPointerUp
	default:
		return TopicPointerCancel
	}
}
