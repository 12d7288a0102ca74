package event

import "context"

// Priority determines handler execution order. Lower values execute
// first.
type Priority int

const (
	// PriorityCritical is for renderer and engine handlers that must run first.
	PriorityCritical Priority = 0

	// PriorityHigh is for trace and script handlers.
	PriorityHigh Priority = 100

	// PriorityNormal is the default priority.
	PriorityNormal Priority = 200

	// PriorityLow is for metrics and logging handlers that run last.
	PriorityLow Priority = 300
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// Handler is the interface for event handlers. The event parameter is
// type-erased; handlers type-assert to the payload they expect.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// FilterFunc is a predicate for filtering events. Return true to allow
// the event.
type FilterFunc func(event any) bool

// Stats contains bus delivery statistics.
type Stats struct {
	// EventsPublished is the total number of events published.
	EventsPublished uint64

	// EventsDelivered is the total number of successful handler deliveries.
	EventsDelivered uint64

	// HandlerErrors is the number of handlers that returned errors.
	HandlerErrors uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// ActiveSubscribers is the current number of active subscriptions.
	ActiveSubscribers int
}

// PanicHandler is called when a handler panics during delivery.
type PanicHandler func(event any, recovered any)
