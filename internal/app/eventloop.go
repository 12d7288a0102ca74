package app

import (
	"fmt"
	"time"

	"github.com/dshills/revealkit/internal/event/events"
	"github.com/dshills/revealkit/internal/pointer"
	"github.com/dshills/revealkit/internal/renderer"
	"github.com/dshills/revealkit/internal/renderer/backend"
	"github.com/dshills/revealkit/internal/reveal"
)

const (
	targetFPS = 60
	frameTime = time.Second / targetFPS

	// metricsEvery is the frame interval between metrics snapshots
	// published on the bus.
	metricsEvery = 60
)

// mouseState tracks the pointer sequence synthesized from terminal
// mouse events. Terminals report absolute positions; deltas come from
// diffing against the previous sample.
type mouseState struct {
	down  bool
	seq   uint64
	lastX int
	lastY int
}

// eventLoop is the interactive main loop: one goroutine owning the
// surface, fed by a frame ticker and a buffered input channel.
func (app *Application) eventLoop() error {
	inputs := app.startInputPolling()

	frameTicker := time.NewTicker(frameTime)
	defer frameTicker.Stop()

	lastUpdate := time.Now()
	var frames uint64

	// Paint the initial frame before any input arrives.
	app.draw()
	app.dirty = false

	for app.running.Load() {
		select {
		case <-app.done:
			return nil

		case ev, ok := <-inputs:
			if !ok {
				return nil
			}
			app.Metrics().RecordInput()
			if err := app.handleBackendEvent(ev); err != nil {
				return err
			}

		case <-frameTicker.C:
			now := time.Now()
			dt := now.Sub(lastUpdate)
			lastUpdate = now

			// A pending configuration applies at a frame boundary, so the
			// surface only ever changes on this goroutine.
			select {
			case cfg := <-app.configUpdates:
				app.surface.ApplyConfig(cfg)
				app.LogInfo("surface configuration applied")
				app.dirty = true
			default:
			}

			if app.surface.Tick(dt) {
				app.dirty = true
			}
			app.Metrics().RecordFrame(dt)

			frames++
			if frames%metricsEvery == 0 {
				app.publishMetrics()
			}

			if app.dirty {
				app.draw()
				app.dirty = false
			}
		}
	}

	return nil
}

// startInputPolling starts a goroutine that polls the backend for input
// events. The channel is buffered; when the loop falls behind, events
// are dropped rather than blocking the poller.
//
// PollEvent blocks, so this goroutine may only exit once the backend is
// shut down. Run's deferred backend.Shutdown unblocks it.
func (app *Application) startInputPolling() <-chan backend.Event {
	inputs := make(chan backend.Event, 100)

	go func() {
		defer close(inputs)

		for app.running.Load() {
			ev := app.backend.PollEvent()
			if !app.running.Load() {
				return
			}
			if ev.Type == backend.EventNone {
				continue
			}

			select {
			case inputs <- ev:
			case <-app.done:
				return
			default:
				app.Metrics().RecordInputDropped()
				app.publish(events.NewInputDropped(1, "input"))
			}
		}
	}()

	return inputs
}

// handleBackendEvent processes one backend event.
// Returns ErrQuit when the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		return app.handleResize(ev)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		return app.handleMouseEvent(ev)
	default:
		return nil
	}
}

// handleResize propagates new dimensions to the surface.
func (app *Application) handleResize(ev backend.Event) error {
	app.surface.SetSize(float64(ev.Width), float64(ev.Height))
	app.publish(events.NewResized(ev.Width, ev.Height, "backend"))
	app.dirty = true
	return nil
}

// handleKeyEvent processes the demo's keyboard fallbacks: h and l open
// the panels, Escape closes, q quits.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyCtrlC, backend.KeyCtrlQ:
		return ErrQuit
	case backend.KeyEscape:
		app.commandClose()
		return nil
	case backend.KeyCtrlL:
		app.dirty = true
		return nil
	case backend.KeyUp:
		app.scrollContent(-1)
		return nil
	case backend.KeyDown:
		app.scrollContent(1)
		return nil
	case backend.KeyRune:
		// Handled below.
	default:
		return nil
	}

	switch ev.Rune {
	case 'q':
		return ErrQuit
	case 'h':
		app.commandOpen(reveal.SideLeft)
	case 'l':
		app.commandOpen(reveal.SideRight)
	case 'j':
		app.scrollContent(1)
	case 'k':
		app.scrollContent(-1)
	}
	return nil
}

// handleMouseEvent synthesizes pointer sequence events from terminal
// mouse reports and feeds them to the engine.
func (app *Application) handleMouseEvent(ev backend.Event) error {
	switch ev.MouseButton {
	case backend.MouseWheelUp:
		app.scrollContent(-1)
		return nil
	case backend.MouseWheelDown:
		app.scrollContent(1)
		return nil
	}

	now := time.Now()
	switch {
	case ev.MouseButton == backend.MouseLeft && !app.mouse.down:
		app.mouse.down = true
		app.mouse.seq++
		app.mouse.lastX, app.mouse.lastY = ev.MouseX, ev.MouseY
		app.feedPointer(pointer.Event{
			Seq:       app.mouse.seq,
			Phase:     pointer.PhaseDown,
			Position:  pointer.Position{X: float64(ev.MouseX), Y: float64(ev.MouseY)},
			Timestamp: now,
		})

	case ev.MouseButton == backend.MouseLeft && app.mouse.down:
		dx := ev.MouseX - app.mouse.lastX
		dy := ev.MouseY - app.mouse.lastY
		if dx == 0 && dy == 0 {
			return nil
		}
		app.mouse.lastX, app.mouse.lastY = ev.MouseX, ev.MouseY
		app.feedPointer(pointer.Event{
			Seq:       app.mouse.seq,
			Phase:     pointer.PhaseMove,
			Position:  pointer.Position{X: float64(ev.MouseX), Y: float64(ev.MouseY)},
			DX:        float64(dx),
			DY:        float64(dy),
			Timestamp: now,
		})

	case ev.MouseButton == backend.MouseNone && app.mouse.down:
		app.mouse.down = false
		app.feedPointer(pointer.Event{
			Seq:       app.mouse.seq,
			Phase:     pointer.PhaseUp,
			Position:  pointer.Position{X: float64(ev.MouseX), Y: float64(ev.MouseY)},
			Timestamp: now,
		})
	}
	return nil
}

// feedPointer routes one pointer event through the engine, records it,
// and acts on the routing decision.
func (app *Application) feedPointer(ev pointer.Event) {
	routing := app.surface.HandlePointer(ev)
	if app.recorder != nil {
		app.recorder.RecordPointer(ev)
	}
	app.publish(events.NewPointer(ev, routing, "input"))

	// Content-owned vertical drags scroll the demo list; the engine
	// passed the deltas through untouched.
	if routing == reveal.RoutingContent && ev.Phase == pointer.PhaseMove && ev.DY != 0 {
		delta := -1
		if ev.DY < 0 {
			delta = 1
		}
		app.scrollContent(delta)
	}
	app.dirty = true
}

// commandOpen is the keyboard open path.
func (app *Application) commandOpen(side reveal.Side) {
	app.controller.Open(side)
	if app.recorder != nil {
		app.recorder.RecordOpen(side)
	}
	app.dirty = true
}

// commandClose is the keyboard close path.
func (app *Application) commandClose() {
	app.controller.Close()
	if app.recorder != nil {
		app.recorder.RecordClose()
	}
	app.dirty = true
}

// scrollContent scrolls the demo content column.
func (app *Application) scrollContent(delta int) {
	if app.renderer == nil {
		return
	}
	app.renderer.ScrollBy(delta)
	app.dirty = true
}

// draw renders the current surface state with a live status line.
func (app *Application) draw() {
	if app.renderer == nil {
		return
	}

	snap := app.Metrics().Snapshot()
	status := fmt.Sprintf("fps %.0f  gestures %d  blocked %d",
		snap.CurrentFPS(), snap.GesturesStarted, snap.GesturesBlocked)

	app.renderer.Draw(renderer.Frame{
		Side:   app.surface.CurrentSide(),
		Value:  app.surface.Value(),
		State:  app.surface.State(),
		Status: status,
	})
}

// publishMetrics puts a counters snapshot on the bus.
func (app *Application) publishMetrics() {
	snap := app.Metrics().Snapshot()
	app.publish(events.NewMetricsSnapshot(events.MetricsPayload{
		FrameCount:       snap.FrameCount,
		FPS:              snap.AvgFPS(),
		GesturesStarted:  snap.GesturesStarted,
		GesturesContent:  snap.GesturesContent,
		GesturesBlocked:  snap.GesturesBlocked,
		SettlesCompleted: snap.SettlesCompleted,
		SettlesDismissed: snap.SettlesDismissed,
		ProgressSamples:  snap.ProgressSamples,
		InputDropped:     snap.InputDropped,
	}, "app"))
}
