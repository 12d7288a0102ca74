package events

import (
	"github.com/dshills/revealkit/internal/event"
	"github.com/dshills/revealkit/internal/event/topic"
)

// TopicMetricsSnapshot carries periodic interaction counters.
const TopicMetricsSnapshot topic.Topic = "metrics.snapshot"

// MetricsPayload is a point-in-time view of the interaction counters.
type MetricsPayload struct {
	FrameCount       uint64
	FPS              float64
	GesturesStarted  uint64
	GesturesContent  uint64
	GesturesBlocked  uint64
	SettlesCompleted uint64
	SettlesDismissed uint64
	ProgressSamples  uint64
	InputDropped     uint64
}

// NewMetricsSnapshot creates a metrics.snapshot event.
func NewMetricsSnapshot(p MetricsPayload, source string) event.Event[MetricsPayload] {
	return event.New(TopicMetricsSnapshot, p, source)
}
