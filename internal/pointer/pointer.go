// Package pointer defines the raw pointer event stream consumed by the
// reveal engine. Events carry a position, a per-event delta, and a
// monotonic timestamp; the engine never sees host-framework event types.
package pointer

import "time"

// Phase identifies where an event sits in a pointer sequence.
type Phase uint8

const (
	// PhaseNone indicates no phase.
	PhaseNone Phase = iota
	// PhaseDown begins a pointer sequence.
	PhaseDown
	// PhaseMove continues a pointer sequence.
	PhaseMove
	// PhaseUp ends a pointer sequence normally.
	PhaseUp
	// PhaseCancel ends a pointer sequence abnormally (system interruption).
	PhaseCancel
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
		return "none"
	}
}

// Position represents a surface coordinate in abstract units.
type Position struct {
	X float64
	Y float64
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Distance returns the Manhattan distance (|dx| + |dy|) between two
// positions. Manhattan distance is cheap and good enough for proximity
// checks on an interaction surface.
func (p Position) Distance(other Position) float64 {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Event represents a single pointer input sample.
type Event struct {
	// Seq identifies the pointer sequence this event belongs to.
	// All events between a down and the matching up/cancel share a Seq.
	Seq uint64

	// Phase is the event phase within the sequence.
	Phase Phase

	// Position is the surface coordinate of the sample.
	Position Position

	// DX and DY are the per-event deltas from the previous sample.
	DX float64
	DY float64

	// Timestamp is the monotonic time of the sample.
	Timestamp time.Time
}

// IsTerminal returns true if the event ends its sequence.
func (e Event) IsTerminal() bool {
	return e.Phase == PhaseUp || e.Phase == PhaseCancel
}
