package reveal

import "time"

// SettleStatus describes the state of the settle animation.
type SettleStatus uint8

const (
	// SettleIdle means no settle is in flight and none has finished
	// since the last value change.
	SettleIdle SettleStatus = iota
	// SettleRunning means a settle is mid-flight.
	SettleRunning
	// SettleCompleted means the last settle reached exactly 1.
	SettleCompleted
	// SettleDismissed means the last settle reached exactly 0.
	SettleDismissed
)

// String returns a string representation of the status.
func (s SettleStatus) String() string {
	switch s {
	case SettleRunning:
		return "running"
	case SettleCompleted:
		return "completed"
	case SettleDismissed:
		return "dismissed"
	default:
		return "idle"
	}
}

// settle is the resumable interpolation task that resolves progress to
// an exact bound. It is advanced by an external tick source and can be
// cancelled between any two ticks.
type settle struct {
	start    float64
	target   float64
	elapsed  time.Duration
	duration time.Duration
}

// Model owns the scalar progress value and its settle animation. It has
// no knowledge of gestures.
type Model struct {
	value  float64
	settle *settle
	status SettleStatus
}

// NewModel creates a progress model at value 0.
func NewModel() *Model {
	return &Model{}
}

// Value returns the current progress value.
func (m *Model) Value() float64 {
	return m.value
}

// SetValue clamps v to [0,1] and stores it, returning the stored value.
// Setting a value does not disturb an in-flight settle; callers cancel
// first when a gesture takes over.
func (m *Model) SetValue(v float64) float64 {
	m.value = clamp01(v)
	m.status = SettleIdle
	return m.value
}

// Settling returns true while a settle animation is in flight.
func (m *Model) Settling() bool {
	return m.settle != nil
}

// Status returns the status of the most recent settle.
func (m *Model) Status() SettleStatus {
	return m.status
}

// StartSettle begins a frame-driven animation that moves the value
// monotonically toward 1 (direction > 0) or 0 (direction < 0) over the
// given duration. If the value is already at the target bound the settle
// completes immediately with no ticks. The returned status is
// SettleRunning, SettleCompleted, or SettleDismissed.
func (m *Model) StartSettle(direction int, duration time.Duration) SettleStatus {
	target := 0.0
	if direction > 0 {
		target = 1.0
	}

	if m.value == target {
		m.settle = nil
		m.status = terminalStatus(target)
		return m.status
	}

	if duration <= 0 {
		m.value = target
		m.settle = nil
		m.status = terminalStatus(target)
		return m.status
	}

	m.settle = &settle{
		start:    m.value,
		target:   target,
		duration: duration,
	}
	m.status = SettleRunning
	return m.status
}

// CancelSettle stops a settle mid-flight, leaving the value wherever it
// was. Cancellation takes effect immediately; no partial tick runs.
func (m *Model) CancelSettle() {
	m.settle = nil
	m.status = SettleIdle
}

// Tick advances the settle animation by dt. It returns the settle
// status after the tick and whether the value changed. When the
// animation reaches its bound the value is snapped to exactly 0 or 1,
// never an epsilon-close approximation.
func (m *Model) Tick(dt time.Duration) (SettleStatus, bool) {
	if m.settle == nil {
		return m.status, false
	}

	s := m.settle
	s.elapsed += dt

	if s.elapsed >= s.duration {
		m.value = s.target
		m.settle = nil
		m.status = terminalStatus(s.target)
		return m.status, true
	}

	t := float64(s.elapsed) / float64(s.duration)
	prev := m.value
	m.value = s.start + (s.target-s.start)*easeOutCubic(t)
	return SettleRunning, m.value != prev
}

// terminalStatus maps a reached bound to its status.
func terminalStatus(target float64) SettleStatus {
	if target >= 1 {
		return SettleCompleted
	}
	return SettleDismissed
}

// easeOutCubic is a monotonic easing curve on [0,1].
func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// clamp01 hard-clamps v into [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
