package reveal

import (
	"testing"
	"time"

	"github.com/dshills/revealkit/internal/pointer"
)

// testClock returns a fixed base time for deterministic sequences.
func testClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

// recorder collects surface callbacks for assertions.
type recorder struct {
	reports []Report
	blocked []Side
	settled []SettleStatus
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnReport:  func(rep Report) { r.reports = append(r.reports, rep) },
		OnBlocked: func(s Side) { r.blocked = append(r.blocked, s) },
		OnSettled: func(st SettleStatus, _ Side) { r.settled = append(r.settled, st) },
	}
}

func (r *recorder) lastReport() Report {
	if len(r.reports) == 0 {
		return Report{}
	}
	return r.reports[len(r.reports)-1]
}

// driver scripts pointer sequences against a surface with advancing
// timestamps.
type driver struct {
	s   *Surface
	seq uint64
	pos pointer.Position
	t   time.Time
}

func newDriver(s *Surface) *driver {
	return &driver{s: s, t: testClock()}
}

func (d *driver) down(x, y float64) Routing {
	d.seq++
	d.pos = pointer.Position{X: x, Y: y}
	return d.s.HandlePointer(pointer.Event{
		Seq: d.seq, Phase: pointer.PhaseDown, Position: d.pos, Timestamp: d.t,
	})
}

// move advances the pointer by (dx, dy) over dt.
func (d *driver) move(dx, dy float64, dt time.Duration) Routing {
	d.t = d.t.Add(dt)
	d.pos.X += dx
	d.pos.Y += dy
	return d.s.HandlePointer(pointer.Event{
		Seq: d.seq, Phase: pointer.PhaseMove, Position: d.pos,
		DX: dx, DY: dy, Timestamp: d.t,
	})
}

func (d *driver) up() Routing {
	d.t = d.t.Add(time.Millisecond)
	return d.s.HandlePointer(pointer.Event{
		Seq: d.seq, Phase: pointer.PhaseUp, Position: d.pos, Timestamp: d.t,
	})
}

func (d *driver) cancel() Routing {
	d.t = d.t.Add(time.Millisecond)
	return d.s.HandlePointer(pointer.Event{
		Seq: d.seq, Phase: pointer.PhaseCancel, Position: d.pos, Timestamp: d.t,
	})
}

// settle runs frame ticks until the settle animation resolves.
func (d *driver) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 200; i++ {
		d.s.Tick(16 * time.Millisecond)
		if !d.s.Settling() {
			return
		}
	}
	t.Fatal("settle did not resolve within 200 ticks")
}

func newTestSurface(cfg Config) (*Surface, *recorder, *driver) {
	rec := &recorder{}
	s := New(cfg, rec.callbacks())
	s.SetSize(200, 400)
	return s, rec, newDriver(s)
}

// near compares accumulated drag values; bound values 0 and 1 are
// compared strictly instead, since settles guarantee exact bounds.
func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestSurfaceHorizontalDragOpensLeft(t *testing.T) {
	// dx = +40 over 4 moves of +10 each, from value 0, left enabled,
	// surface width 200: value 0.2, active side left.
	s, _, d := newTestSurface(DefaultConfig())

	d.down(100, 100)
	for i := 0; i < 4; i++ {
		d.move(10, 0, 10*time.Millisecond)
	}

	if got := s.Value(); !near(got, 0.2) {
		t.Errorf("value = %v, want 0.2", got)
	}
	if got := s.CurrentSide(); got != SideLeft {
		t.Errorf("side = %v, want %v", got, SideLeft)
	}
	if got := s.GestureOwnership(); got != OwnerReveal {
		t.Errorf("ownership = %v, want %v", got, OwnerReveal)
	}
}

func TestSurfaceVerticalDragNeverMovesValue(t *testing.T) {
	// dy accumulates to 20 while dx stays under the recognition
	// distance: ownership resolves to content, value untouched.
	s, rec, d := newTestSurface(DefaultConfig())

	d.down(100, 100)
	var last Routing
	for i := 0; i < 4; i++ {
		last = d.move(1, 5, 10*time.Millisecond)
	}

	if last != RoutingContent {
		t.Errorf("routing = %v, want %v", last, RoutingContent)
	}
	if got := s.Value(); got != 0 {
		t.Errorf("value = %v, want 0", got)
	}
	if got := s.GestureOwnership(); got != OwnerContent {
		t.Errorf("ownership = %v, want %v", got, OwnerContent)
	}
	if len(rec.reports) != 0 {
		t.Errorf("emitted %d reports for a content gesture, want 0", len(rec.reports))
	}
}

func TestSurfaceValueAlwaysInRange(t *testing.T) {
	s, rec, d := newTestSurface(DefaultConfig())

	d.down(0, 100)
	deltas := []float64{50, 500, -900, 1200, -50, 300, -2000, 800}
	for _, dx := range deltas {
		d.move(dx, 0, 5*time.Millisecond)
		if v := s.Value(); v < 0 || v > 1 {
			t.Fatalf("value %v out of [0,1] after delta %v", v, dx)
		}
	}
	d.up()
	d.settle(t)

	for i, rep := range rec.reports {
		if rep.Value < 0 || rep.Value > 1 {
			t.Errorf("report %d value %v out of [0,1]", i, rep.Value)
		}
	}
}

func TestSurfaceReleaseBelowThresholdSettlesClosed(t *testing.T) {
	s, rec, d := newTestSurface(DefaultConfig())

	d.down(50, 100)
	// 80 units over slow moves: value 0.4, velocity 200 u/s, below both
	// the threshold and the fling velocity.
	for i := 0; i < 4; i++ {
		d.move(20, 0, 100*time.Millisecond)
	}
	if got := s.Value(); !near(got, 0.4) {
		t.Fatalf("value before release = %v, want 0.4", got)
	}
	d.up()
	d.settle(t)

	if got := s.Value(); got != 0 {
		t.Errorf("settled value = %v, want exactly 0", got)
	}
	if got := s.CurrentSide(); got != SideNone {
		t.Errorf("side after dismissal = %v, want %v", got, SideNone)
	}
	if got := rec.lastReport().State; got != StateClosed {
		t.Errorf("final state = %v, want %v", got, StateClosed)
	}
	if len(rec.settled) == 0 || rec.settled[len(rec.settled)-1] != SettleDismissed {
		t.Errorf("settled statuses = %v, want trailing %v", rec.settled, SettleDismissed)
	}
}

func TestSurfaceReleasePastThresholdSettlesOpen(t *testing.T) {
	s, rec, d := newTestSurface(DefaultConfig())

	d.down(20, 100)
	for i := 0; i < 6; i++ {
		d.move(20, 0, 100*time.Millisecond)
	}
	if got := s.Value(); !near(got, 0.6) {
		t.Fatalf("value before release = %v, want 0.6", got)
	}
	d.up()
	d.settle(t)

	if got := s.Value(); got != 1 {
		t.Errorf("settled value = %v, want exactly 1", got)
	}
	if got := s.CurrentSide(); got != SideLeft {
		t.Errorf("side = %v, want %v", got, SideLeft)
	}
	if got := rec.lastReport().State; got != StateOpen {
		t.Errorf("final state = %v, want %v", got, StateOpen)
	}
}

func TestSurfaceFlingCommitsBelowThreshold(t *testing.T) {
	s, _, d := newTestSurface(DefaultConfig())

	d.down(20, 100)
	d.move(30, 0, 100*time.Millisecond) // 300 u/s
	d.move(30, 0, 50*time.Millisecond)  // 600 u/s, value 0.3
	if got := s.Value(); !near(got, 0.3) {
		t.Fatalf("value before release = %v, want 0.3", got)
	}
	d.up()
	d.settle(t)

	if got := s.Value(); got != 1 {
		t.Errorf("value after fling = %v, want 1", got)
	}
}

func TestSurfaceClosingFlingDoesNotCommitClose(t *testing.T) {
	// A fast backwards fling at value 0.9 still settles open: the
	// commit rule is value past threshold OR an opening-direction fling.
	s, _, d := newTestSurface(DefaultConfig())

	d.down(10, 100)
	d.move(180, 0, 100*time.Millisecond) // value 0.9
	d.move(-2, 0, 2*time.Millisecond)    // -1000 u/s closing fling
	d.up()
	d.settle(t)

	if got := s.Value(); got != 1 {
		t.Errorf("value = %v, want 1", got)
	}
}

func TestSurfaceCancelAlwaysSettlesClosed(t *testing.T) {
	tests := []struct {
		name  string
		drags int
	}{
		{"below threshold", 2},
		{"above threshold", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, d := newTestSurface(DefaultConfig())

			d.down(10, 100)
			for i := 0; i < tt.drags; i++ {
				d.move(20, 0, 5*time.Millisecond)
			}
			d.cancel()
			d.settle(t)

			if got := s.Value(); got != 0 {
				t.Errorf("value after cancel = %v, want 0", got)
			}
			if got := s.CurrentSide(); got != SideNone {
				t.Errorf("side after cancel = %v, want %v", got, SideNone)
			}
		})
	}
}

func TestSurfaceBlockedSideNotification(t *testing.T) {
	// Right disabled, leftward drag from 0: exactly one blocked(right)
	// notification and value stays 0.
	cfg := DefaultConfig()
	cfg.Edges.Right.Enabled = false
	s, rec, d := newTestSurface(cfg)

	d.down(150, 100)
	var last Routing
	for i := 0; i < 5; i++ {
		last = d.move(-10, 0, 10*time.Millisecond)
	}
	d.up()

	if last != RoutingBlocked {
		t.Errorf("routing = %v, want %v", last, RoutingBlocked)
	}
	if got := s.Value(); got != 0 {
		t.Errorf("value = %v, want 0", got)
	}
	if len(rec.blocked) != 1 || rec.blocked[0] != SideRight {
		t.Errorf("blocked notifications = %v, want exactly [right]", rec.blocked)
	}
}

func TestSurfaceDisabledSideStillClosesOpenPanel(t *testing.T) {
	// Disabling a side gates new opens, not close drags on a panel that
	// is already out.
	cfg := DefaultConfig()
	s, _, d := newTestSurface(cfg)
	s.Controller().OpenLeft()
	d.settle(t)

	cfg.Edges.Left.Enabled = false
	s.ApplyConfig(cfg)

	d.down(150, 100)
	for i := 0; i < 8; i++ {
		d.move(-20, 0, 50*time.Millisecond)
	}
	d.up()
	d.settle(t)

	if got := s.Value(); got != 0 {
		t.Errorf("value = %v, want 0", got)
	}
}

func TestSurfaceProgrammaticOpenCancelsGesture(t *testing.T) {
	// openLeft() mid right-reveal gesture discards the gesture and
	// drives value to 1 with the left side active.
	cfg := DefaultConfig()
	s, _, d := newTestSurface(cfg)

	d.down(180, 100)
	d.move(-20, 0, 10*time.Millisecond)
	if got := s.CurrentSide(); got != SideRight {
		t.Fatalf("side mid-gesture = %v, want %v", got, SideRight)
	}

	s.Controller().OpenLeft()

	// Further events from the dead sequence must be ignored.
	if got := d.move(-40, 0, 10*time.Millisecond); got != RoutingNone {
		t.Errorf("routing after command = %v, want %v", got, RoutingNone)
	}
	if got := d.up(); got != RoutingNone {
		t.Errorf("up routing after command = %v, want %v", got, RoutingNone)
	}

	d.settle(t)
	if got := s.Value(); got != 1 {
		t.Errorf("value = %v, want 1", got)
	}
	if got := s.CurrentSide(); got != SideLeft {
		t.Errorf("side = %v, want %v", got, SideLeft)
	}
}

func TestSurfaceConcurrentDownRejected(t *testing.T) {
	s, _, d := newTestSurface(DefaultConfig())

	d.down(100, 100)
	d.move(10, 0, 10*time.Millisecond)
	firstSeq := d.seq

	// A second down while the first sequence is unresolved is rejected
	// silently; its events have no effect.
	if got := d.down(50, 50); got != RoutingNone {
		t.Errorf("concurrent down routing = %v, want %v", got, RoutingNone)
	}
	if got := d.move(100, 0, 10*time.Millisecond); got != RoutingNone {
		t.Errorf("rejected sequence move routing = %v, want %v", got, RoutingNone)
	}
	if got := s.Value(); !near(got, 0.05) {
		t.Errorf("value = %v, want 0.05", got)
	}

	// The original sequence keeps working.
	d.seq = firstSeq
	d.move(10, 0, 10*time.Millisecond)
	if got := s.Value(); !near(got, 0.1) {
		t.Errorf("value = %v, want 0.1", got)
	}
}

func TestSurfaceMoveWithoutDownIgnored(t *testing.T) {
	s, rec, _ := newTestSurface(DefaultConfig())

	got := s.HandlePointer(pointer.Event{
		Seq: 7, Phase: pointer.PhaseMove, DX: 50, Timestamp: testClock(),
	})
	if got != RoutingNone {
		t.Errorf("routing = %v, want %v", got, RoutingNone)
	}
	if s.Value() != 0 || len(rec.reports) != 0 {
		t.Errorf("stray move changed state: value=%v reports=%d", s.Value(), len(rec.reports))
	}
}

func TestSurfaceTapRoutesToContent(t *testing.T) {
	s, _, d := newTestSurface(DefaultConfig())

	d.down(100, 100)
	if got := d.up(); got != RoutingContent {
		t.Errorf("tap up routing = %v, want %v", got, RoutingContent)
	}
	if s.GestureOwnership() != OwnerUndetermined {
		t.Error("gesture survived its release")
	}
}

func TestSurfaceGestureInterruptsSettle(t *testing.T) {
	s, _, d := newTestSurface(DefaultConfig())

	// Drag out, release below threshold, then catch the panel on its
	// way back in.
	d.down(10, 100)
	for i := 0; i < 4; i++ {
		d.move(20, 0, 100*time.Millisecond)
	}
	d.up()
	s.Tick(50 * time.Millisecond)
	if !s.Settling() {
		t.Fatal("expected settle in flight")
	}
	mid := s.Value()

	d.down(100, 100)
	d.move(10, 0, 10*time.Millisecond) // resolves reveal, cancels settle
	if s.Settling() {
		t.Error("settle still in flight after reveal resolution")
	}
	if got := s.Value(); !near(got, mid+0.05) {
		t.Errorf("value = %v, want %v", got, mid+0.05)
	}
	if got := s.CurrentSide(); got != SideLeft {
		t.Errorf("side = %v, want %v", got, SideLeft)
	}
}

func TestSurfaceOpenPanelDragClose(t *testing.T) {
	// With the left panel open, a leftward drag closes it: the lock
	// comes from the open side, not the delta sign.
	s, _, d := newTestSurface(DefaultConfig())
	s.Controller().OpenLeft()
	d.settle(t)

	d.down(150, 100)
	d.move(-20, 0, 10*time.Millisecond)
	if got := s.CurrentSide(); got != SideLeft {
		t.Errorf("side = %v, want %v", got, SideLeft)
	}
	if got := s.Value(); !near(got, 0.9) {
		t.Errorf("value = %v, want 0.9", got)
	}
	for i := 0; i < 8; i++ {
		d.move(-20, 0, 100*time.Millisecond)
	}
	d.up()
	d.settle(t)

	if got := s.Value(); got != 0 {
		t.Errorf("value = %v, want 0", got)
	}
	if got := s.CurrentSide(); got != SideNone {
		t.Errorf("side = %v, want %v", got, SideNone)
	}
}

func TestSurfaceEdgeOnlyMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = ModeEdgeOnly
	cfg.Edges.Left.HitWidth = 20
	cfg.Edges.Right.HitWidth = 20

	t.Run("inside hit region owns reveal immediately", func(t *testing.T) {
		s, _, d := newTestSurface(cfg)
		if got := d.down(10, 100); got != RoutingReveal {
			t.Fatalf("down routing = %v, want %v", got, RoutingReveal)
		}
		// No arbitration race: even a diagonal move drags the panel.
		d.move(10, 30, 10*time.Millisecond)
		if got := s.Value(); !near(got, 0.05) {
			t.Errorf("value = %v, want 0.05", got)
		}
		if got := s.CurrentSide(); got != SideLeft {
			t.Errorf("side = %v, want %v", got, SideLeft)
		}
	})

	t.Run("outside hit region never observed", func(t *testing.T) {
		s, rec, d := newTestSurface(cfg)
		if got := d.down(100, 100); got != RoutingNone {
			t.Errorf("down routing = %v, want %v", got, RoutingNone)
		}
		d.move(50, 0, 10*time.Millisecond)
		if s.Value() != 0 || len(rec.reports) != 0 {
			t.Errorf("engine observed an outside-region sequence")
		}
	})

	t.Run("disabled side hit region blocks once", func(t *testing.T) {
		blockedCfg := cfg
		blockedCfg.Edges.Right.Enabled = false
		s, rec, d := newTestSurface(blockedCfg)

		if got := d.down(195, 100); got != RoutingBlocked {
			t.Errorf("down routing = %v, want %v", got, RoutingBlocked)
		}
		d.move(-50, 0, 10*time.Millisecond)
		d.up()
		if len(rec.blocked) != 1 || rec.blocked[0] != SideRight {
			t.Errorf("blocked notifications = %v, want exactly [right]", rec.blocked)
		}
		if s.Value() != 0 {
			t.Errorf("value = %v, want 0", s.Value())
		}
	})

	t.Run("open panel grabs from anywhere", func(t *testing.T) {
		s, _, d := newTestSurface(cfg)
		s.Controller().OpenLeft()
		d.settle(t)

		if got := d.down(120, 100); got != RoutingReveal {
			t.Errorf("down routing with open panel = %v, want %v", got, RoutingReveal)
		}
		d.move(-20, 0, 10*time.Millisecond)
		if got := s.Value(); !near(got, 0.9) {
			t.Errorf("value = %v, want 0.9", got)
		}
	})
}

func TestSurfaceEnablementChangeDoesNotCancelLiveGesture(t *testing.T) {
	cfg := DefaultConfig()
	s, _, d := newTestSurface(cfg)

	d.down(10, 100)
	d.move(20, 0, 10*time.Millisecond) // locked left, reveal-owned

	cfg.Edges.Left.Enabled = false
	s.ApplyConfig(cfg)

	d.move(20, 0, 10*time.Millisecond)
	if got := s.Value(); !near(got, 0.2) {
		t.Errorf("value = %v, want 0.2 (gesture survived enablement change)", got)
	}
}

func TestSurfaceShutdownIgnoresInput(t *testing.T) {
	s, _, d := newTestSurface(DefaultConfig())

	d.down(10, 100)
	d.move(60, 0, 10*time.Millisecond)
	d.up()
	if !s.Settling() {
		t.Fatal("expected settle in flight")
	}

	s.Shutdown()
	if s.Settling() {
		t.Error("settle survived shutdown")
	}
	if got := d.down(10, 100); got != RoutingNone {
		t.Errorf("down after shutdown = %v, want %v", got, RoutingNone)
	}
	if s.Tick(16 * time.Millisecond) {
		t.Error("tick after shutdown reported a change")
	}
}

func TestSurfaceReportsEveryDragSample(t *testing.T) {
	s, rec, d := newTestSurface(DefaultConfig())

	d.down(10, 100)
	for i := 0; i < 5; i++ {
		d.move(10, 0, 10*time.Millisecond)
	}

	// One report per reveal-owned sample: the resolving move plus four
	// follow-ups.
	if len(rec.reports) != 5 {
		t.Fatalf("got %d reports, want 5", len(rec.reports))
	}
	for i := 1; i < len(rec.reports); i++ {
		if rec.reports[i].Value <= rec.reports[i-1].Value {
			t.Errorf("report %d value %v not increasing", i, rec.reports[i].Value)
		}
		if rec.reports[i].State != StateOpening {
			t.Errorf("report %d state = %v, want %v", i, rec.reports[i].State, StateOpening)
		}
	}
	_ = s
}

func BenchmarkSurfaceDrag(b *testing.B) {
	s, _, _ := newTestSurface(DefaultConfig())
	d := newDriver(s)
	d.down(10, 100)
	d.move(10, 0, time.Millisecond)

	ev := pointer.Event{
		Seq: d.seq, Phase: pointer.PhaseMove, DX: 0.5, Timestamp: d.t,
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.HandlePointer(ev)
	}
}
