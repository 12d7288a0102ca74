package notify

import "testing"

func TestNotifierGlobalSubscribe(t *testing.T) {
	n := New()
	defer n.Close()

	var got []Change
	n.Subscribe(func(c Change) { got = append(got, c) })

	n.NotifySet("reveal.mode", "full-surface", "edge-only", "test")
	if len(got) != 1 {
		t.Fatalf("delivered %d changes, want 1", len(got))
	}
	c := got[0]
	if c.Path != "reveal.mode" || c.OldValue != "full-surface" || c.NewValue != "edge-only" {
		t.Errorf("change = %+v", c)
	}
	if c.Type != ChangeSet {
		t.Errorf("type = %v, want %v", c.Type, ChangeSet)
	}
}

func TestNotifierPathSubscribe(t *testing.T) {
	tests := []struct {
		name     string
		subPath  string
		chgPath  string
		notified bool
	}{
		{"exact", "edges.left.enabled", "edges.left.enabled", true},
		{"parent", "edges", "edges.left.enabled", true},
		{"grandparent", "edges", "edges.right.hit_width", true},
		{"sibling", "edges.left", "edges.right.enabled", false},
		{"unrelated", "logging", "edges.left.enabled", false},
		{"prefix but not segment", "edge", "edges.left.enabled", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New()
			defer n.Close()

			notified := false
			n.SubscribePath(tt.subPath, func(c Change) { notified = true })
			n.NotifySet(tt.chgPath, nil, 1, "test")

			if notified != tt.notified {
				t.Errorf("subscribed %q, changed %q: notified = %v, want %v",
					tt.subPath, tt.chgPath, notified, tt.notified)
			}
		})
	}
}

func TestNotifierReloadReachesPathObservers(t *testing.T) {
	n := New()
	defer n.Close()

	count := 0
	n.SubscribePath("reveal", func(c Change) { count++ })
	n.NotifyReload("test")

	if count != 1 {
		t.Errorf("reload deliveries = %d, want 1", count)
	}
}

func TestNotifierUnsubscribe(t *testing.T) {
	n := New()
	defer n.Close()

	count := 0
	sub := n.Subscribe(func(c Change) { count++ })
	sub.Unsubscribe()

	n.NotifySet("x", nil, 1, "test")
	if count != 0 {
		t.Errorf("delivered after unsubscribe = %d, want 0", count)
	}
}

func TestNotifierObserverMayUnsubscribeInCallback(t *testing.T) {
	n := New()
	defer n.Close()

	count := 0
	var sub *Subscription
	sub = n.Subscribe(func(c Change) {
		count++
		sub.Unsubscribe()
	})

	n.NotifySet("x", nil, 1, "test")
	n.NotifySet("x", nil, 2, "test")
	if count != 1 {
		t.Errorf("delivered = %d, want 1", count)
	}
}

func TestNotifierClosedDropsChanges(t *testing.T) {
	n := New()
	count := 0
	n.Subscribe(func(c Change) { count++ })

	n.Close()
	n.NotifySet("x", nil, 1, "test")
	if count != 0 {
		t.Errorf("delivered after close = %d, want 0", count)
	}
}
