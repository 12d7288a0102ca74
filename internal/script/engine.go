package script

import (
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/revealkit/internal/pointer"
	"github.com/dshills/revealkit/internal/reveal"
)

// frameStep is the virtual frame interval scripts advance by. Scripts
// are deterministic: every move and tick steps the clock by exactly one
// frame.
const frameStep = 16 * time.Millisecond

// settleTickCap bounds reveal.settle() so a script cannot spin forever
// on an animation that never terminates.
const settleTickCap = 1000

// Engine binds a sandboxed Lua state to a reveal surface. Scripts see a
// global `reveal` module:
//
//	reveal.down(x, y)        begin a pointer sequence, returns routing
//	reveal.move(dx, dy)      drag by a delta, returns routing
//	reveal.up()              release, returns routing
//	reveal.cancel()          cancel the sequence, returns routing
//	reveal.tick([frames])    advance the settle animation
//	reveal.settle()          tick until the settle animation finishes
//	reveal.open(side)        programmatic open ("left" or "right")
//	reveal.close()           programmatic close
//	reveal.value()           current progress value
//	reveal.state()           "closed" | "opening" | "open" | "closing"
//	reveal.side()            "left" | "right" | "none"
//	reveal.is_open()         true when fully open
type Engine struct {
	state   *State
	surface *reveal.Surface

	seq   uint64
	pos   pointer.Position
	live  bool
	clock time.Time
}

// NewEngine creates an engine driving the given surface.
func NewEngine(surface *reveal.Surface) *Engine {
	e := &Engine{
		state:   NewState(),
		surface: surface,
		clock:   time.Unix(0, 0),
	}
	e.state.RegisterModule("reveal", map[string]lua.LGFunction{
		"down":    e.luaDown,
		"move":    e.luaMove,
		"up":      e.luaUp,
		"cancel":  e.luaCancel,
		"tick":    e.luaTick,
		"settle":  e.luaSettle,
		"open":    e.luaOpen,
		"close":   e.luaClose,
		"value":   e.luaValue,
		"state":   e.luaState,
		"side":    e.luaSide,
		"is_open": e.luaIsOpen,
	})
	return e
}

// RunFile executes a script file against the surface.
func (e *Engine) RunFile(path string) error {
	return e.state.DoFile(path)
}

// RunString executes script source against the surface.
func (e *Engine) RunString(code string) error {
	return e.state.DoString(code)
}

// State exposes the underlying Lua state for registering extra modules.
func (e *Engine) State() *State {
	return e.state
}

// Close releases the Lua state.
func (e *Engine) Close() error {
	return e.state.Close()
}

func (e *Engine) luaDown(L *lua.LState) int {
	x := float64(L.CheckNumber(1))
	y := float64(L.CheckNumber(2))

	e.seq++
	e.pos = pointer.Position{X: x, Y: y}
	e.live = true

	routing := e.surface.HandlePointer(pointer.Event{
		Seq:       e.seq,
		Phase:     pointer.PhaseDown,
		Position:  e.pos,
		Timestamp: e.clock,
	})
	L.Push(lua.LString(routing.String()))
	return 1
}

func (e *Engine) luaMove(L *lua.LState) int {
	dx := float64(L.CheckNumber(1))
	dy := float64(L.CheckNumber(2))
	if !e.live {
		L.RaiseError("reveal.move called with no pointer down")
		return 0
	}

	e.clock = e.clock.Add(frameStep)
	e.pos = pointer.Position{X: e.pos.X + dx, Y: e.pos.Y + dy}

	routing := e.surface.HandlePointer(pointer.Event{
		Seq:       e.seq,
		Phase:     pointer.PhaseMove,
		Position:  e.pos,
		DX:        dx,
		DY:        dy,
		Timestamp: e.clock,
	})
	L.Push(lua.LString(routing.String()))
	return 1
}

func (e *Engine) luaUp(L *lua.LState) int {
	return e.finish(L, pointer.PhaseUp)
}

func (e *Engine) luaCancel(L *lua.LState) int {
	return e.finish(L, pointer.PhaseCancel)
}

func (e *Engine) finish(L *lua.LState, phase pointer.Phase) int {
	if !e.live {
		L.RaiseError("reveal.%s called with no pointer down", phase)
		return 0
	}
	e.live = false

	routing := e.surface.HandlePointer(pointer.Event{
		Seq:       e.seq,
		Phase:     phase,
		Position:  e.pos,
		Timestamp: e.clock,
	})
	L.Push(lua.LString(routing.String()))
	return 1
}

func (e *Engine) luaTick(L *lua.LState) int {
	frames := int(L.OptNumber(1, 1))
	for i := 0; i < frames; i++ {
		e.clock = e.clock.Add(frameStep)
		e.surface.Tick(frameStep)
	}
	return 0
}

func (e *Engine) luaSettle(L *lua.LState) int {
	for i := 0; i < settleTickCap && e.surface.Settling(); i++ {
		e.clock = e.clock.Add(frameStep)
		e.surface.Tick(frameStep)
	}
	return 0
}

func (e *Engine) luaOpen(L *lua.LState) int {
	side := L.CheckString(1)
	switch side {
	case "left":
		e.surface.Controller().OpenLeft()
	case "right":
		e.surface.Controller().OpenRight()
	default:
		L.ArgError(1, "side must be \"left\" or \"right\"")
	}
	return 0
}

func (e *Engine) luaClose(L *lua.LState) int {
	e.surface.Controller().Close()
	return 0
}

func (e *Engine) luaValue(L *lua.LState) int {
	L.Push(lua.LNumber(e.surface.Value()))
	return 1
}

func (e *Engine) luaState(L *lua.LState) int {
	L.Push(lua.LString(e.surface.State().String()))
	return 1
}

func (e *Engine) luaSide(L *lua.LState) int {
	L.Push(lua.LString(e.surface.CurrentSide().String()))
	return 1
}

func (e *Engine) luaIsOpen(L *lua.LState) int {
	L.Push(lua.LBool(e.surface.Controller().IsOpen()))
	return 1
}
