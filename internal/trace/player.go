package trace

import (
	"fmt"
	"time"

	"github.com/dshills/revealkit/internal/pointer"
	"github.com/dshills/revealkit/internal/reveal"
)

// playerFrame is the fixed tick interval a replay advances animations
// by between entries.
const playerFrame = 16 * time.Millisecond

// settleTickCap bounds the trailing settle loop.
const settleTickCap = 1000

// Player replays a trace into a surface. Replays are deterministic:
// event timestamps come from the trace and animation frames advance on
// a fixed tick, so the same trace always produces the same trajectory.
type Player struct {
	trace *Trace
}

// NewPlayer creates a player for the given trace.
func NewPlayer(t *Trace) *Player {
	return &Player{trace: t}
}

// Replay feeds every entry to the surface in order, ticking the settle
// animation through the recorded gaps, then runs any trailing settle to
// completion.
func (p *Player) Replay(s *reveal.Surface) error {
	if len(p.trace.Entries) == 0 {
		return ErrEmptyTrace
	}
	if p.trace.Width > 0 {
		s.SetSize(p.trace.Width, p.trace.Height)
	}

	base := time.Unix(0, 0)
	clock := base
	controller := s.Controller()
	var seq uint64

	for i, e := range p.trace.Entries {
		// Advance animations through the recorded gap before the entry.
		target := base.Add(time.Duration(e.At) * time.Millisecond)
		for clock.Before(target) {
			clock = clock.Add(playerFrame)
			s.Tick(playerFrame)
		}

		switch e.Kind {
		case KindDown:
			seq++
			s.HandlePointer(pointer.Event{
				Seq:       seq,
				Phase:     pointer.PhaseDown,
				Position:  pointer.Position{X: e.X, Y: e.Y},
				Timestamp: target,
			})
		case KindMove:
			s.HandlePointer(pointer.Event{
				Seq:       seq,
				Phase:     pointer.PhaseMove,
				Position:  pointer.Position{X: e.X, Y: e.Y},
				DX:        e.DX,
				DY:        e.DY,
				Timestamp: target,
			})
		case KindUp:
			s.HandlePointer(pointer.Event{
				Seq:       seq,
				Phase:     pointer.PhaseUp,
				Position:  pointer.Position{X: e.X, Y: e.Y},
				Timestamp: target,
			})
		case KindCancel:
			s.HandlePointer(pointer.Event{
				Seq:       seq,
				Phase:     pointer.PhaseCancel,
				Position:  pointer.Position{X: e.X, Y: e.Y},
				Timestamp: target,
			})
		case KindOpen:
			if e.Side == "right" {
				controller.OpenRight()
			} else {
				controller.OpenLeft()
			}
		case KindClose:
			controller.Close()
		default:
			return fmt.Errorf("entry %d: unknown kind %q", i, e.Kind)
		}
	}

	for i := 0; i < settleTickCap && s.Settling(); i++ {
		s.Tick(playerFrame)
	}
	return nil
}
