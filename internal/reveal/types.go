package reveal

import "time"

// Side identifies which panel a reveal operation concerns.
type Side uint8

const (
	// SideNone indicates no panel. It is only valid while progress is
	// zero and no gesture is in flight.
	SideNone Side = iota
	// SideLeft is the panel revealed from the left edge.
	SideLeft
	// SideRight is the panel revealed from the right edge.
	SideRight
)

// String returns a string representation of the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Opposite returns the other panel side, or SideNone for SideNone.
func (s Side) Opposite() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideNone
	}
}

// State is the discrete reveal state derived from the progress
// trajectory. It is never set directly.
type State uint8

const (
	// StateClosed means progress is exactly 0.
	StateClosed State = iota
	// StateOpening means progress is strictly between 0 and 1 and rising.
	StateOpening
	// StateOpen means progress is exactly 1.
	StateOpen
	// StateClosing means progress is strictly between 0 and 1 and falling.
	StateClosing
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return "closed"
	}
}

// Ownership classifies who owns an in-progress pointer sequence.
type Ownership uint8

const (
	// OwnerUndetermined means arbitration has not resolved yet.
	OwnerUndetermined Ownership = iota
	// OwnerReveal means the sequence drives the reveal interaction.
	OwnerReveal
	// OwnerContent means the sequence belongs to the content surface and
	// its deltas pass through untouched.
	OwnerContent
	// OwnerBlocked means the sequence targeted a disabled side; its
	// deltas are swallowed and progress does not move.
	OwnerBlocked
)

// String returns a string representation of the ownership.
func (o Ownership) String() string {
	switch o {
	case OwnerReveal:
		return "reveal"
	case OwnerContent:
		return "content"
	case OwnerBlocked:
		return "blocked"
	default:
		return "undetermined"
	}
}

// Routing tells the host what to do with the pointer event it just fed
// to the engine.
type Routing uint8

const (
	// RoutingNone means the event was not observed (or was rejected);
	// the host may treat it however it likes.
	RoutingNone Routing = iota
	// RoutingPending means arbitration is still undetermined; the host
	// should hold the event until ownership resolves.
	RoutingPending
	// RoutingReveal means the engine consumed the event.
	RoutingReveal
	// RoutingContent means the event belongs to the content surface and
	// should be delivered there untouched.
	RoutingContent
	// RoutingBlocked means the sequence targeted a disabled side and its
	// events are swallowed.
	RoutingBlocked
)

// String returns a string representation of the routing.
func (r Routing) String() string {
	switch r {
	case RoutingPending:
		return "pending"
	case RoutingReveal:
		return "reveal"
	case RoutingContent:
		return "content"
	case RoutingBlocked:
		return "blocked"
	default:
		return "none"
	}
}

// Sample is a raw progress observation fed to the Reporter.
type Sample struct {
	// Side is the active panel side, SideNone only at zero progress with
	// no gesture in flight.
	Side Side

	// Value is the normalized progress in [0,1].
	Value float64

	// Timestamp is the monotonic time of the observation.
	Timestamp time.Time
}

// Report is the combined progress event emitted to the host on every
// sample, never batched or debounced.
type Report struct {
	// Side is the active panel side.
	Side Side

	// Value is the normalized progress in [0,1].
	Value float64

	// State is the discrete reveal state derived from the trajectory.
	State State

	// Timestamp is the monotonic time of the underlying sample.
	Timestamp time.Time
}
