// Package backend abstracts terminal I/O for the renderer. The real
// implementation drives a tcell screen; NullBackend is an in-memory
// double for tests and headless replay.
package backend

import (
	"sync"

	"github.com/dshills/revealkit/internal/renderer/core"
)

// EventType identifies the kind of input event a backend produced.
type EventType int

// Event types.
const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
)

// Key identifies a non-rune key press.
type Key int

// Keys the demo reacts to. Rune input arrives as KeyRune with the rune
// in Event.Rune.
const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlL
	KeyCtrlQ
)

// ModMask is a bitmask of modifier keys.
type ModMask int

// Modifier flags.
const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// MouseButton identifies the pressed button in a mouse event.
type MouseButton int

// Mouse buttons. Wheel motion is reported as button values so a single
// event type covers both clicks and scrolls.
const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Event is a single input event from the terminal.
type Event struct {
	Type EventType

	// Key events.
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse events. Buttons holds the currently pressed button, or
	// MouseNone for pure motion (drag release shows up as a MouseNone
	// event at the final position).
	MouseX      int
	MouseY      int
	MouseButton MouseButton

	// Resize events.
	Width  int
	Height int
}

// Backend is the terminal abstraction the renderer draws through.
type Backend interface {
	// Init prepares the terminal for drawing and enables mouse reporting.
	Init() error

	// Shutdown restores the terminal to its original state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// OnResize registers a callback invoked when the terminal resizes.
	OnResize(func(width, height int))

	// SetCell writes a cell at the given position.
	SetCell(x, y int, cell core.Cell)

	// GetCell reads back the cell at the given position.
	GetCell(x, y int) core.Cell

	// Fill writes the cell to every position in the rectangle.
	Fill(rect core.ScreenRect, cell core.Cell)

	// Clear erases the screen.
	Clear()

	// Show flushes pending drawing to the terminal.
	Show()

	// HideCursor hides the text cursor. The demo never shows one.
	HideCursor()

	// PollEvent blocks until the next input event is available.
	PollEvent() Event

	// PostEvent injects an event into the poll queue. Best effort; the
	// event is dropped if the queue is full.
	PostEvent(event Event)

	// Suspend and Resume temporarily release the terminal, e.g. around
	// shelling out.
	Suspend() error
	Resume() error
}

// NullBackend is an in-memory Backend for tests. Cells written to it
// can be read back, and events are injected with PostEvent or Resize.
type NullBackend struct {
	mu            sync.Mutex
	width         int
	height        int
	cells         map[[2]int]core.Cell
	resizeHandler func(width, height int)
	events        chan Event
	showCount     int
	closed        bool
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		cells:  make(map[[2]int]core.Cell),
		events: make(chan Event, 100),
	}
}

func (n *NullBackend) Init() error { return nil }

// Shutdown closes the event queue so a blocked PollEvent returns.
func (n *NullBackend) Shutdown() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	close(n.events)
}

func (n *NullBackend) Size() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.width, n.height
}

func (n *NullBackend) OnResize(callback func(width, height int)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resizeHandler = callback
}

func (n *NullBackend) SetCell(x, y int, cell core.Cell) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if x < 0 || y < 0 || x >= n.width || y >= n.height {
		return
	}
	n.cells[[2]int{x, y}] = cell
}

func (n *NullBackend) GetCell(x, y int) core.Cell {
	n.mu.Lock()
	defer n.mu.Unlock()
	if cell, ok := n.cells[[2]int{x, y}]; ok {
		return cell
	}
	return core.EmptyCell()
}

func (n *NullBackend) Fill(rect core.ScreenRect, cell core.Cell) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for y := rect.Top; y < rect.Bottom && y < n.height; y++ {
		for x := rect.Left; x < rect.Right && x < n.width; x++ {
			if x >= 0 && y >= 0 {
				n.cells[[2]int{x, y}] = cell
			}
		}
	}
}

func (n *NullBackend) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cells = make(map[[2]int]core.Cell)
}

func (n *NullBackend) Show() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.showCount++
}

// ShowCount reports how many times Show has been called.
func (n *NullBackend) ShowCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.showCount
}

func (n *NullBackend) HideCursor() {}

func (n *NullBackend) PollEvent() Event {
	ev, ok := <-n.events
	if !ok {
		return Event{}
	}
	return ev
}

func (n *NullBackend) PostEvent(event Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}

	select {
	case n.events <- event:
	default:
		// Queue full; drop.
	}
}

func (n *NullBackend) Suspend() error { return nil }

func (n *NullBackend) Resume() error { return nil }

// Resize changes the dimensions and fires the resize callback. Test
// helper; a real terminal resizes on its own schedule.
func (n *NullBackend) Resize(width, height int) {
	n.mu.Lock()
	n.width = width
	n.height = height
	handler := n.resizeHandler
	n.mu.Unlock()

	if handler != nil {
		handler(width, height)
	}
	n.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
