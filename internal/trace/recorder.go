package trace

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/revealkit/internal/pointer"
	"github.com/dshills/revealkit/internal/reveal"
)

// Recorder accumulates pointer events and controller commands into a
// trace. Timestamps are stored relative to the first recorded entry, so
// replays are independent of wall-clock time.
type Recorder struct {
	mu    sync.Mutex
	trace Trace
	start time.Time
	now   func() time.Time
}

// NewRecorder starts a recording for a surface of the given size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{
		trace: Trace{
			ID:     uuid.NewString(),
			Width:  width,
			Height: height,
		},
		now: time.Now,
	}
}

// RecordPointer appends a pointer event.
func (r *Recorder) RecordPointer(ev pointer.Event) {
	kind := ""
	switch ev.Phase {
	case pointer.PhaseDown:
		kind = KindDown
	case pointer.PhaseMove:
		kind = KindMove
	case pointer.PhaseUp:
		kind = KindUp
	case pointer.PhaseCancel:
		kind = KindCancel
	default:
		return
	}

	r.append(Entry{
		Kind: kind,
		X:    ev.Position.X,
		Y:    ev.Position.Y,
		DX:   ev.DX,
		DY:   ev.DY,
	})
}

// RecordOpen appends a programmatic open command.
func (r *Recorder) RecordOpen(side reveal.Side) {
	if side != reveal.SideLeft && side != reveal.SideRight {
		return
	}
	r.append(Entry{Kind: KindOpen, Side: side.String()})
}

// RecordClose appends a programmatic close command.
func (r *Recorder) RecordClose() {
	r.append(Entry{Kind: KindClose})
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trace.Entries)
}

// Trace returns a snapshot of the recording.
func (r *Recorder) Trace() *Trace {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.trace
	snapshot.Entries = make([]Entry, len(r.trace.Entries))
	copy(snapshot.Entries, r.trace.Entries)
	return &snapshot
}

// Save writes the recording to a file.
func (r *Recorder) Save(path string) error {
	return r.Trace().Save(path)
}

func (r *Recorder) append(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.now()
	if r.start.IsZero() {
		r.start = t
		r.trace.RecordedAt = t
	}
	e.At = t.Sub(r.start).Milliseconds()
	r.trace.Entries = append(r.trace.Entries, e)
}
