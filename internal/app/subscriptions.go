package app

import (
	"context"
	"sync"

	"github.com/dshills/revealkit/internal/event"
	"github.com/dshills/revealkit/internal/event/events"
)

// subscriptionManager bridges bus topics to the logger, the metrics
// tracker, and queued surface configuration updates.
type subscriptionManager struct {
	mu            sync.Mutex
	subscriptions []event.Subscription
	app           *Application
}

// newSubscriptionManager creates a new subscription manager.
func newSubscriptionManager(app *Application) *subscriptionManager {
	return &subscriptionManager{
		subscriptions: make([]event.Subscription, 0),
		app:           app,
	}
}

// setup registers all event subscriptions.
func (sm *subscriptionManager) setup() error {
	if sm.app.bus == nil {
		return nil
	}

	// Progress samples -> metrics and debug logging
	if err := sm.subscribeProgress(); err != nil {
		return err
	}

	// Arbitration resolutions -> gesture counters
	if err := sm.subscribeOwnership(); err != nil {
		return err
	}

	// Blocked gestures -> warning log
	if err := sm.subscribeBlocked(); err != nil {
		return err
	}

	// Settle completions -> settle counters
	if err := sm.subscribeSettled(); err != nil {
		return err
	}

	// Config reloads -> queued surface configuration
	if err := sm.subscribeConfig(); err != nil {
		return err
	}

	// Dropped input -> warning log
	if err := sm.subscribeInputDropped(); err != nil {
		return err
	}

	return nil
}

// subscribeProgress subscribes to progress samples. Runs last so
// logging never delays rendering-side observers.
func (sm *subscriptionManager) subscribeProgress() error {
	sub, err := sm.app.bus.SubscribeFunc(
		events.TopicRevealProgress,
		sm.handleProgress,
		event.WithPriority(event.PriorityLow),
	)
	if err != nil {
		return err
	}
	sm.addSubscription(sub)
	return nil
}

// subscribeOwnership subscribes to arbitration resolutions.
func (sm *subscriptionManager) subscribeOwnership() error {
	sub, err := sm.app.bus.SubscribeFunc(
		events.TopicRevealOwnership,
		sm.handleOwnership,
		event.WithPriority(event.PriorityNormal),
	)
	if err != nil {
		return err
	}
	sm.addSubscription(sub)
	return nil
}

// subscribeBlocked subscribes to blocked-gesture notifications.
func (sm *subscriptionManager) subscribeBlocked() error {
	sub, err := sm.app.bus.SubscribeFunc(
		events.TopicRevealBlocked,
		sm.handleBlocked,
		event.WithPriority(event.PriorityNormal),
	)
	if err != nil {
		return err
	}
	sm.addSubscription(sub)
	return nil
}

// subscribeSettled subscribes to settle completions.
func (sm *subscriptionManager) subscribeSettled() error {
	sub, err := sm.app.bus.SubscribeFunc(
		events.TopicRevealSettled,
		sm.handleSettled,
		event.WithPriority(event.PriorityNormal),
	)
	if err != nil {
		return err
	}
	sm.addSubscription(sub)
	return nil
}

// subscribeConfig subscribes to config reload and error events.
func (sm *subscriptionManager) subscribeConfig() error {
	sub, err := sm.app.bus.SubscribeFunc(
		events.TopicConfigReloaded,
		sm.handleConfigReloaded,
		event.WithPriority(event.PriorityHigh),
	)
	if err != nil {
		return err
	}
	sm.addSubscription(sub)

	sub, err = sm.app.bus.SubscribeFunc(
		events.TopicConfigError,
		sm.handleConfigError,
		event.WithPriority(event.PriorityNormal),
	)
	if err != nil {
		return err
	}
	sm.addSubscription(sub)
	return nil
}

// subscribeInputDropped subscribes to dropped-input notifications.
func (sm *subscriptionManager) subscribeInputDropped() error {
	sub, err := sm.app.bus.SubscribeFunc(
		events.TopicAppInputDropped,
		sm.handleInputDropped,
		event.WithPriority(event.PriorityLow),
	)
	if err != nil {
		return err
	}
	sm.addSubscription(sub)
	return nil
}

// addSubscription adds a subscription to the managed list.
func (sm *subscriptionManager) addSubscription(sub event.Subscription) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.subscriptions = append(sm.subscriptions, sub)
}

// cleanup unsubscribes all managed subscriptions.
// Safe to call multiple times (idempotent).
func (sm *subscriptionManager) cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.app == nil || sm.app.bus == nil {
		sm.subscriptions = nil
		return
	}

	for _, sub := range sm.subscriptions {
		if sub != nil {
			_ = sm.app.bus.Unsubscribe(sub)
		}
	}
	sm.subscriptions = nil
}

// Event handlers

// handleProgress counts the sample and logs it at debug.
func (sm *subscriptionManager) handleProgress(_ context.Context, ev any) error {
	e, ok := ev.(event.Event[events.ProgressPayload])
	if !ok {
		return nil
	}
	sm.app.Metrics().RecordSample()
	sm.app.LogDebug("progress side=%s value=%.3f state=%s",
		e.Payload.Side, e.Payload.Value, e.Payload.State)
	return nil
}

// handleOwnership counts the resolution outcome.
func (sm *subscriptionManager) handleOwnership(_ context.Context, ev any) error {
	e, ok := ev.(event.Event[events.OwnershipPayload])
	if !ok {
		return nil
	}
	sm.app.Metrics().RecordOwnership(e.Payload.Ownership)
	sm.app.LogDebug("gesture resolved %s side=%s", e.Payload.Ownership, e.Payload.Side)
	return nil
}

// handleBlocked logs the blocked side.
func (sm *subscriptionManager) handleBlocked(_ context.Context, ev any) error {
	e, ok := ev.(event.Event[events.BlockedPayload])
	if !ok {
		return nil
	}
	sm.app.LogWarn("gesture blocked: %s side disabled", e.Payload.Side)
	return nil
}

// handleSettled counts the settle outcome.
func (sm *subscriptionManager) handleSettled(_ context.Context, ev any) error {
	e, ok := ev.(event.Event[events.SettledPayload])
	if !ok {
		return nil
	}
	sm.app.Metrics().RecordSettle(e.Payload.Status)
	sm.app.LogDebug("settle %s side=%s", e.Payload.Status, e.Payload.Side)
	return nil
}

// handleConfigReloaded queues the new engine configuration so the event
// loop applies it on its own goroutine.
func (sm *subscriptionManager) handleConfigReloaded(_ context.Context, ev any) error {
	if _, ok := ev.(event.Event[events.ConfigReloadedPayload]); !ok {
		return nil
	}
	sm.app.queueConfig(sm.app.revealConfig())
	return nil
}

// handleConfigError logs a failed reload.
func (sm *subscriptionManager) handleConfigError(_ context.Context, ev any) error {
	e, ok := ev.(event.Event[events.ConfigErrorPayload])
	if !ok {
		return nil
	}
	sm.app.LogWarn("config error in %s: %s", e.Payload.Path, e.Payload.Err)
	return nil
}

// handleInputDropped logs input pressure.
func (sm *subscriptionManager) handleInputDropped(_ context.Context, ev any) error {
	e, ok := ev.(event.Event[events.InputDroppedPayload])
	if !ok {
		return nil
	}
	sm.app.LogWarn("input events dropped: %d", e.Payload.Count)
	return nil
}
