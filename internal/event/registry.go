package event

import (
	"sort"
	"sync"

	"github.com/dshills/revealkit/internal/event/topic"
)

// registry stores subscriptions keyed by topic pattern. It is safe for
// concurrent use.
type registry struct {
	mu   sync.RWMutex
	subs map[topic.Topic][]*subscription
	byID map[string]*subscription
}

func newRegistry() *registry {
	return &registry{
		subs: make(map[topic.Topic][]*subscription),
		byID: make(map[string]*subscription),
	}
}

func (r *registry) add(sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pattern := sub.Topic()
	r.subs[pattern] = append(r.subs[pattern], sub)
	r.byID[sub.ID()] = sub
}

func (r *registry) remove(subID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, exists := r.byID[subID]
	if !exists {
		return false
	}

	pattern := sub.Topic()
	subs := r.subs[pattern]
	for i, s := range subs {
		if s.ID() == subID {
			r.subs[pattern] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(r.subs[pattern]) == 0 {
		delete(r.subs, pattern)
	}
	delete(r.byID, subID)
	return true
}

// matchActive returns the active subscriptions whose pattern matches the
// event topic, sorted by priority (lower values first). The result is a
// copy safe to iterate while the registry mutates.
func (r *registry) matchActive(eventTopic topic.Topic) []*subscription {
	r.mu.RLock()
	var matched []*subscription
	for pattern, subs := range r.subs {
		if !eventTopic.Matches(pattern) {
			continue
		}
		for _, sub := range subs {
			if sub.IsActive() {
				matched = append(matched, sub)
			}
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].config.Priority < matched[j].config.Priority
	})
	return matched
}

func (r *registry) countActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, sub := range r.byID {
		if sub.IsActive() {
			count++
		}
	}
	return count
}

func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs = make(map[topic.Topic][]*subscription)
	r.byID = make(map[string]*subscription)
}
