package events

import (
	"github.com/dshills/revealkit/internal/event"
	"github.com/dshills/revealkit/internal/event/topic"
	"github.com/dshills/revealkit/internal/reveal"
)

// Reveal engine topics.
const (
	// TopicRevealProgress carries every progress/state sample.
	TopicRevealProgress topic.Topic = "reveal.progress"

	// TopicRevealBlocked carries blocked-gesture notifications.
	TopicRevealBlocked topic.Topic = "reveal.blocked"

	// TopicRevealOwnership carries gesture arbitration resolutions.
	TopicRevealOwnership topic.Topic = "reveal.ownership"

	// TopicRevealSettled carries settle completion/dismissal.
	TopicRevealSettled topic.Topic = "reveal.settled"
)

// ProgressPayload is one progress sample with its derived state.
type ProgressPayload struct {
	Side  reveal.Side
	Value float64
	State reveal.State
}

// NewProgress creates a reveal.progress event from an engine report.
func NewProgress(report reveal.Report, source string) event.Event[ProgressPayload] {
	return event.New(TopicRevealProgress, ProgressPayload{
		Side:  report.Side,
		Value: report.Value,
		State: report.State,
	}, source)
}

// BlockedPayload identifies the disabled side a gesture tried to engage.
type BlockedPayload struct {
	Side reveal.Side
}

// NewBlocked creates a reveal.blocked event.
func NewBlocked(side reveal.Side, source string) event.Event[BlockedPayload] {
	return event.New(TopicRevealBlocked, BlockedPayload{Side: side}, source)
}

// OwnershipPayload records how a pointer sequence's arbitration resolved.
type OwnershipPayload struct {
	Ownership reveal.Ownership
	Side      reveal.Side
}

// NewOwnership creates a reveal.ownership event.
func NewOwnership(o reveal.Ownership, side reveal.Side, source string) event.Event[OwnershipPayload] {
	return event.New(TopicRevealOwnership, OwnershipPayload{Ownership: o, Side: side}, source)
}

// SettledPayload records a settle animation reaching its bound.
type SettledPayload struct {
	Status reveal.SettleStatus
	Side   reveal.Side
}

// NewSettled creates a reveal.settled event.
func NewSettled(status reveal.SettleStatus, side reveal.Side, source string) event.Event[SettledPayload] {
	return event.New(TopicRevealSettled, SettledPayload{Status: status, Side: side}, source)
}
