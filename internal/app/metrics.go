package app

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/revealkit/internal/reveal"
)

// Metrics tracks interaction and frame counters. All counters are
// atomic; recording is safe from any goroutine.
type Metrics struct {
	// Frame timing
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64

	// Gesture outcomes
	gesturesStarted  atomic.Uint64
	gesturesContent  atomic.Uint64
	gesturesBlocked  atomic.Uint64
	settlesCompleted atomic.Uint64
	settlesDismissed atomic.Uint64
	progressSamples  atomic.Uint64

	// Input handling
	inputCount   atomic.Uint64
	inputDropped atomic.Uint64

	// Start time for uptime calculation
	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so first frame will be smaller
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records frame timing.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	// Update min (atomic compare-and-swap loop)
	for {
		old := m.frameMinNs.Load()
		if ns >= old {
			break
		}
		if m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}

	// Update max (atomic compare-and-swap loop)
	for {
		old := m.frameMaxNs.Load()
		if ns <= old {
			break
		}
		if m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordOwnership records how a pointer sequence's arbitration resolved.
func (m *Metrics) RecordOwnership(o reveal.Ownership) {
	switch o {
	case reveal.OwnerReveal:
		m.gesturesStarted.Add(1)
	case reveal.OwnerContent:
		m.gesturesContent.Add(1)
	case reveal.OwnerBlocked:
		m.gesturesBlocked.Add(1)
	}
}

// RecordSettle records a finished settle animation.
func (m *Metrics) RecordSettle(status reveal.SettleStatus) {
	switch status {
	case reveal.SettleCompleted:
		m.settlesCompleted.Add(1)
	case reveal.SettleDismissed:
		m.settlesDismissed.Add(1)
	}
}

// RecordSample records one progress report.
func (m *Metrics) RecordSample() {
	m.progressSamples.Add(1)
}

// RecordInput records a processed input event.
func (m *Metrics) RecordInput() {
	m.inputCount.Add(1)
}

// RecordInputDropped records a dropped input event.
func (m *Metrics) RecordInputDropped() {
	m.inputDropped.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()

	var avgFrameNs int64
	if frameCount > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frameCount)
	}

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == 1<<63-1 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:           time.Since(m.startTime),
		FrameCount:       frameCount,
		AvgFrameTimeNs:   avgFrameNs,
		MinFrameTimeNs:   minFrameNs,
		MaxFrameTimeNs:   m.frameMaxNs.Load(),
		LastFrameNs:      m.lastFrameNs.Load(),
		GesturesStarted:  m.gesturesStarted.Load(),
		GesturesContent:  m.gesturesContent.Load(),
		GesturesBlocked:  m.gesturesBlocked.Load(),
		SettlesCompleted: m.settlesCompleted.Load(),
		SettlesDismissed: m.settlesDismissed.Load(),
		ProgressSamples:  m.progressSamples.Load(),
		InputCount:       m.inputCount.Load(),
		InputDropped:     m.inputDropped.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.frameCount.Store(0)
	m.frameTotalNs.Store(0)
	m.frameMinNs.Store(1<<63 - 1)
	m.frameMaxNs.Store(0)
	m.lastFrameNs.Store(0)
	m.gesturesStarted.Store(0)
	m.gesturesContent.Store(0)
	m.gesturesBlocked.Store(0)
	m.settlesCompleted.Store(0)
	m.settlesDismissed.Store(0)
	m.progressSamples.Store(0)
	m.inputCount.Store(0)
	m.inputDropped.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime           time.Duration
	FrameCount       uint64
	AvgFrameTimeNs   int64
	MinFrameTimeNs   int64
	MaxFrameTimeNs   int64
	LastFrameNs      int64
	GesturesStarted  uint64
	GesturesContent  uint64
	GesturesBlocked  uint64
	SettlesCompleted uint64
	SettlesDismissed uint64
	ProgressSamples  uint64
	InputCount       uint64
	InputDropped     uint64
}

// AvgFPS returns the average frames per second.
func (s MetricsSnapshot) AvgFPS() float64 {
	if s.AvgFrameTimeNs == 0 {
		return 0
	}
	return 1e9 / float64(s.AvgFrameTimeNs)
}

// CurrentFPS returns the FPS based on last frame time.
func (s MetricsSnapshot) CurrentFPS() float64 {
	if s.LastFrameNs == 0 {
		return 0
	}
	return 1e9 / float64(s.LastFrameNs)
}

// DropRate returns the percentage of dropped input events.
func (s MetricsSnapshot) DropRate() float64 {
	total := s.InputCount + s.InputDropped
	if total == 0 {
		return 0
	}
	return float64(s.InputDropped) / float64(total) * 100
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// ElapsedMs returns the elapsed time in milliseconds.
func (t *Timer) ElapsedMs() float64 {
	return float64(t.Elapsed().Nanoseconds()) / 1e6
}

// Stop returns the elapsed time and resets the timer.
func (t *Timer) Stop() time.Duration {
	elapsed := t.Elapsed()
	t.start = time.Now()
	return elapsed
}

// appMetrics is the application-wide metrics instance.
var (
	appMetrics     *Metrics
	appMetricsOnce sync.Once
)

// GetMetrics returns the application metrics.
func GetMetrics() *Metrics {
	appMetricsOnce.Do(func() {
		if appMetrics == nil {
			appMetrics = NewMetrics()
		}
	})
	return appMetrics
}

// SetMetrics sets the application-wide metrics.
func SetMetrics(m *Metrics) {
	appMetrics = m
}

// Metrics returns the application's metrics instance.
func (app *Application) Metrics() *Metrics {
	if app.metrics == nil {
		return GetMetrics()
	}
	return app.metrics
}
