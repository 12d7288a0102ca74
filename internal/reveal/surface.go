package reveal

import (
	"time"

	"github.com/dshills/revealkit/internal/pointer"
)

// Callbacks are the side-effect ports of the engine. All callbacks fire
// synchronously on the goroutine driving the surface.
type Callbacks struct {
	// OnReport receives every progress report, one per sample.
	OnReport ReportFunc

	// OnBlocked is invoked at most once per pointer-down that targets a
	// disabled side.
	OnBlocked func(Side)

	// OnOwnership is invoked when a pointer sequence's ownership
	// resolves. The side is the locked direction for reveal, the blocked
	// side for blocked, and SideNone for content.
	OnOwnership func(Ownership, Side)

	// OnSettled is invoked when a settle animation reaches its bound.
	OnSettled func(SettleStatus, Side)
}

// Surface is the authoritative reveal state object. It owns the
// progress model, the edge-zone model, and the single live gesture, and
// exposes two input ports: HandlePointer for the pointer stream and the
// Controller for programmatic commands.
//
// A Surface must only be used from one goroutine.
type Surface struct {
	cfg       Config
	model     *Model
	edges     *EdgeZones
	arb       arbiter
	reporter  *Reporter
	gesture   *gesture
	active    Side
	width     float64
	height    float64
	lastState State
	callbacks Callbacks
	now       func() time.Time
	closed    bool
}

// New creates a surface with the given configuration and callbacks.
// Invalid threshold values are clamped, never rejected.
func New(cfg Config, cb Callbacks) *Surface {
	cfg = cfg.normalize()
	return &Surface{
		cfg:       cfg,
		model:     NewModel(),
		edges:     NewEdgeZones(cfg.Edges),
		arb:       arbiter{distance: cfg.RecognitionDistance},
		reporter:  NewReporter(nil),
		callbacks: cb,
		width:     1,
		now:       time.Now,
	}
}

// SetSize updates the surface dimensions. Width normalizes drag deltas
// to progress; height bounds the edge hit regions.
func (s *Surface) SetSize(width, height float64) {
	if width > 0 {
		s.width = width
	}
	s.height = height
}

// Width returns the surface width used for delta normalization.
func (s *Surface) Width() float64 {
	return s.width
}

// ApplyConfig replaces thresholds, mode, and edge zones at runtime. An
// in-flight gesture keeps the arbitration it already has; only
// subsequently initiated gestures see the change.
func (s *Surface) ApplyConfig(cfg Config) {
	cfg = cfg.normalize()
	s.cfg = cfg
	s.arb.distance = cfg.RecognitionDistance
	s.edges.Apply(cfg.Edges)
}

// Config returns the active configuration.
func (s *Surface) Config() Config {
	return s.cfg
}

// Edges returns the edge-zone model.
func (s *Surface) Edges() *EdgeZones {
	return s.edges
}

// Controller returns the programmatic command port.
func (s *Surface) Controller() *Controller {
	return &Controller{surface: s}
}

// Value returns the current progress value.
func (s *Surface) Value() float64 {
	return s.model.Value()
}

// CurrentSide returns the active panel side, SideNone when fully closed
// with no gesture in flight.
func (s *Surface) CurrentSide() Side {
	return s.active
}

// State returns the reveal state derived from the last report.
func (s *Surface) State() State {
	return s.lastState
}

// Settling returns true while a settle animation is in flight.
func (s *Surface) Settling() bool {
	return s.model.Settling()
}

// GestureOwnership returns the live gesture's ownership, or
// OwnerUndetermined when no gesture is in flight.
func (s *Surface) GestureOwnership() Ownership {
	if s.gesture == nil {
		return OwnerUndetermined
	}
	return s.gesture.ownership
}

// HandlePointer feeds one pointer event to the engine and returns how
// the host should route it. Events for sequences the engine rejected or
// never observed return RoutingNone and have no effect.
func (s *Surface) HandlePointer(ev pointer.Event) Routing {
	if s.closed {
		return RoutingNone
	}

	switch ev.Phase {
	case pointer.PhaseDown:
		return s.pointerDown(ev)
	case pointer.PhaseMove:
		return s.pointerMove(ev)
	case pointer.PhaseUp:
		return s.pointerFinish(ev, false)
	case pointer.PhaseCancel:
		return s.pointerFinish(ev, true)
	}
	return RoutingNone
}

// pointerDown begins a pointer sequence. A down while another sequence
// is unresolved is rejected silently rather than corrupting it.
func (s *Surface) pointerDown(ev pointer.Event) Routing {
	if s.gesture != nil {
		return RoutingNone
	}

	if s.cfg.Mode == ModeEdgeOnly {
		return s.edgeDown(ev)
	}

	// Full-surface mode: ownership starts undetermined and resolves from
	// accumulated displacement. An in-flight settle keeps running until
	// the sequence actually claims the reveal.
	s.gesture = newGesture(ev)
	return RoutingPending
}

// edgeDown handles pointer-down in edge-only mode. With the panel
// closed, only downs inside an edge hit region are observed at all;
// with the panel open the whole surface implicitly owns the reveal so
// the panel can be dragged shut.
func (s *Surface) edgeDown(ev pointer.Event) Routing {
	if s.model.Value() > 0 {
		g := newGesture(ev)
		g.ownership = OwnerReveal
		g.locked = s.active
		s.gesture = g
		s.model.CancelSettle()
		s.resolved(OwnerReveal, g.locked)
		return RoutingReveal
	}

	side := s.edges.Hit(ev.Position, s.width, s.height)
	if side == SideNone {
		return RoutingNone
	}
	if !s.edges.IsEnabled(side) {
		g := newGesture(ev)
		g.ownership = OwnerBlocked
		s.gesture = g
		s.blocked(side)
		return RoutingBlocked
	}

	g := newGesture(ev)
	g.ownership = OwnerReveal
	g.locked = side
	s.gesture = g
	s.model.CancelSettle()
	s.active = side
	s.resolved(OwnerReveal, side)
	return RoutingReveal
}

// pointerMove processes a move event for the live sequence. Moves with
// no preceding down, or for a rejected sequence, are ignored.
func (s *Surface) pointerMove(ev pointer.Event) Routing {
	g := s.gesture
	if g == nil || g.seq != ev.Seq {
		return RoutingNone
	}

	g.observe(ev)

	switch g.ownership {
	case OwnerContent:
		return RoutingContent
	case OwnerBlocked:
		return RoutingBlocked
	case OwnerReveal:
		s.applyDrag(g, ev.DX)
		return RoutingReveal
	}

	return s.resolve(g)
}

// resolve runs full-surface arbitration on an undetermined gesture.
func (s *Surface) resolve(g *gesture) Routing {
	switch s.arb.classify(g) {
	case OwnerContent:
		g.ownership = OwnerContent
		s.resolved(OwnerContent, SideNone)
		return RoutingContent

	case OwnerReveal:
		locked := s.active
		if s.model.Value() == 0 {
			locked = g.initiatingSide()
			if !s.edges.IsEnabled(locked) {
				g.ownership = OwnerBlocked
				s.blocked(locked)
				return RoutingBlocked
			}
		}

		g.ownership = OwnerReveal
		g.locked = locked
		s.model.CancelSettle()
		if s.model.Value() == 0 {
			s.active = locked
		}
		s.resolved(OwnerReveal, locked)

		// The displacement that won the arbitration race counts toward
		// progress, not just the deltas after it.
		s.applyDrag(g, g.accumDX)
		return RoutingReveal
	}

	return RoutingPending
}

// pointerFinish ends the live sequence on up or cancel.
func (s *Surface) pointerFinish(ev pointer.Event, cancelled bool) Routing {
	g := s.gesture
	if g == nil || g.seq != ev.Seq {
		return RoutingNone
	}
	s.gesture = nil

	switch g.ownership {
	case OwnerReveal:
		s.finishDrag(g, cancelled)
		return RoutingReveal
	case OwnerContent:
		return RoutingContent
	case OwnerBlocked:
		return RoutingBlocked
	}

	// The sequence ended before arbitration resolved: a tap. It was
	// never consumed, so it belongs to the content.
	if cancelled {
		return RoutingNone
	}
	return RoutingContent
}

// Tick advances the settle animation by dt and emits a report for every
// frame the value moves. It returns true if the value changed.
func (s *Surface) Tick(dt time.Duration) bool {
	if s.closed {
		return false
	}

	status, changed := s.model.Tick(dt)
	switch status {
	case SettleRunning:
		if changed {
			s.emit()
		}
		return changed

	case SettleCompleted:
		s.emit()
		s.settled(SettleCompleted, s.active)
		return true

	case SettleDismissed:
		side := s.active
		s.active = SideNone
		s.emit()
		s.settled(SettleDismissed, side)
		return true
	}
	return false
}

// Shutdown tears the surface down: the in-flight settle is cancelled,
// the live gesture discarded, and all further input ignored.
func (s *Surface) Shutdown() {
	if s.closed {
		return
	}
	s.model.CancelSettle()
	s.gesture = nil
	s.closed = true
}

// emit publishes a progress sample through the reporter, synchronously.
func (s *Surface) emit() {
	report := s.reporter.Observe(Sample{
		Side:      s.active,
		Value:     s.model.Value(),
		Timestamp: s.now(),
	})
	s.lastState = report.State
	if s.callbacks.OnReport != nil {
		s.callbacks.OnReport(report)
	}
}

// blocked marks the gesture blocked and emits the one-shot notification.
func (s *Surface) blocked(side Side) {
	if s.gesture != nil {
		s.gesture.ownership = OwnerBlocked
	}
	if s.callbacks.OnBlocked != nil {
		s.callbacks.OnBlocked(side)
	}
	s.resolved(OwnerBlocked, side)
}

func (s *Surface) resolved(o Ownership, side Side) {
	if s.callbacks.OnOwnership != nil {
		s.callbacks.OnOwnership(o, side)
	}
}

func (s *Surface) settled(status SettleStatus, side Side) {
	if s.callbacks.OnSettled != nil {
		s.callbacks.OnSettled(status, side)
	}
}
