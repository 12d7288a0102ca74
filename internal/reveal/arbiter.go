package reveal

import (
	"time"

	"github.com/dshills/revealkit/internal/pointer"
)

// gesture is the transient per-pointer-sequence record. It is created
// on pointer-down, mutated on every move, and destroyed on up/cancel.
// At most one gesture is live at a time; a concurrent pointer-down is
// rejected silently.
type gesture struct {
	// seq identifies the owning pointer sequence.
	seq uint64

	// start is where the sequence began.
	start pointer.Position

	// accumDX and accumDY are the displacement accumulated while
	// ownership is undetermined.
	accumDX float64
	accumDY float64

	// locked is the direction lock: the side this gesture affects, set
	// once per gesture and fixed until the gesture (and its settle)
	// completes.
	locked Side

	// ownership is the arbitration outcome. Once Reveal or Content it
	// never changes within the sequence.
	ownership Ownership

	// lastTime is the timestamp of the most recent sample, used for the
	// release-velocity estimate.
	lastTime time.Time

	// velocity is the signed horizontal velocity of the last move, in
	// surface units per second. A zero or backwards timestamp delta
	// keeps the previous estimate.
	velocity float64
}

// newGesture creates an undetermined gesture for a pointer-down.
func newGesture(ev pointer.Event) *gesture {
	return &gesture{
		seq:       ev.Seq,
		start:     ev.Position,
		ownership: OwnerUndetermined,
		lastTime:  ev.Timestamp,
	}
}

// observe accumulates a move event's displacement and updates the
// velocity estimate.
func (g *gesture) observe(ev pointer.Event) {
	g.accumDX += ev.DX
	g.accumDY += ev.DY

	dt := ev.Timestamp.Sub(g.lastTime)
	if dt > 0 {
		g.velocity = ev.DX / dt.Seconds()
	}
	g.lastTime = ev.Timestamp
}

// openingVelocity returns the release velocity signed so that positive
// means "toward open" for the locked side.
func (g *gesture) openingVelocity() float64 {
	if g.locked == SideRight {
		return -g.velocity
	}
	return g.velocity
}

// arbiter classifies an in-progress pointer sequence as reveal-owned or
// content-owned using accumulated displacement. It only runs in
// full-surface mode; edge-only recognition bypasses it entirely.
type arbiter struct {
	// distance is the recognition distance a drag must exceed before
	// ownership resolves.
	distance float64
}

// classify returns the ownership the accumulated displacement implies,
// or OwnerUndetermined if neither axis has won yet. Horizontal wins only
// when it both exceeds the recognition distance and dominates the
// vertical travel; a vertical-dominant move that exceeds the distance
// first hands the sequence to the content.
func (a *arbiter) classify(g *gesture) Ownership {
	dx := abs(g.accumDX)
	dy := abs(g.accumDY)

	if dx > a.distance && dx > dy {
		return OwnerReveal
	}
	if dy > a.distance && dy >= dx {
		return OwnerContent
	}
	return OwnerUndetermined
}

// initiatingSide returns the side a fresh drag (from zero progress)
// would engage, from the sign of the accumulated horizontal delta: a
// rightward drag reveals the left panel, a leftward drag the right one.
func (g *gesture) initiatingSide() Side {
	if g.accumDX >= 0 {
		return SideLeft
	}
	return SideRight
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
