package event

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/revealkit/internal/event/topic"
)

// Bus is the central synchronous event bus. Publish delivers to every
// matching active subscription on the caller's goroutine, in priority
// order. Handler panics are recovered and counted, never propagated.
type Bus struct {
	registry     *registry
	panicHandler PanicHandler
	closed       atomic.Bool

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithPanicHandler sets the handler invoked when a subscriber panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *Bus) {
		if h != nil {
			b.panicHandler = h
		}
	}
}

// NewBus creates a new event bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{registry: newRegistry()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish delivers an event to all matching active subscriptions. The
// first handler error is returned after all handlers have run; a panic
// in one handler does not stop delivery to the rest.
func (b *Bus) Publish(ctx context.Context, event any) error {
	if b.closed.Load() {
		return ErrBusClosed
	}

	eventTopic := extractTopic(event)
	if eventTopic == "" {
		return ErrInvalidEvent
	}

	subs := b.registry.matchActive(eventTopic)
	if len(subs) == 0 {
		return nil
	}
	b.eventsPublished.Add(1)

	var firstErr error
	for _, sub := range subs {
		if !sub.shouldDeliver(event) {
			continue
		}

		err := b.deliver(ctx, event, sub)
		switch {
		case err == nil:
			b.eventsDelivered.Add(1)
		case firstErr == nil:
			firstErr = &HandlerError{
				SubscriptionID: sub.ID(),
				Topic:          sub.Topic().String(),
				Err:            err,
			}
		}

		if sub.config.Once && err == nil {
			sub.Cancel()
			b.registry.remove(sub.ID())
		}
	}
	return firstErr
}

// deliver runs one handler with panic isolation.
func (b *Bus) deliver(ctx context.Context, event any, sub *subscription) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			b.handlerPanics.Add(1)
			if b.panicHandler != nil {
				b.panicHandler(event, recovered)
			}
			err = &PanicError{
				SubscriptionID: sub.ID(),
				Topic:          sub.Topic().String(),
				Value:          recovered,
			}
		}
	}()

	if err := sub.handler.Handle(ctx, event); err != nil {
		b.handlerErrors.Add(1)
		return err
	}
	return nil
}

// Subscribe registers a handler for a topic pattern.
func (b *Bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(uuid.NewString(), pattern, handler, opts...)
	b.registry.add(sub)
	return sub, nil
}

// SubscribeFunc registers a function handler for a topic pattern.
func (b *Bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe cancels and removes a subscription.
func (b *Bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}
	sub.Cancel()
	if !b.registry.remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Close shuts the bus down. Publishing on a closed bus returns
// ErrBusClosed; all subscriptions are dropped.
func (b *Bus) Close() {
	if b.closed.Swap(true) {
		return
	}
	b.registry.clear()
}

// Stats returns current delivery statistics.
func (b *Bus) Stats() Stats {
	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		EventsDelivered:   b.eventsDelivered.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: b.registry.countActive(),
	}
}

// extractTopic pulls the topic off anything implementing TopicProvider.
func extractTopic(event any) topic.Topic {
	if tp, ok := event.(TopicProvider); ok {
		return tp.EventTopic()
	}
	return ""
}
