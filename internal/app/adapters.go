package app

import (
	"github.com/dshills/revealkit/internal/event/events"
	"github.com/dshills/revealkit/internal/reveal"
)

// callbacks builds the surface callback set. Every engine side effect
// becomes a bus event; nothing downstream talks to the surface through
// these paths, so the callbacks stay one-directional.
func (app *Application) callbacks() reveal.Callbacks {
	return reveal.Callbacks{
		OnReport:    app.onReport,
		OnBlocked:   app.onBlocked,
		OnOwnership: app.onOwnership,
		OnSettled:   app.onSettled,
	}
}

// onReport publishes one progress sample. Reports arrive synchronously
// with the sample, so bus subscribers see them in trajectory order.
func (app *Application) onReport(r reveal.Report) {
	app.publish(events.NewProgress(r, "surface"))
}

// onBlocked publishes the one-shot blocked-gesture notification.
func (app *Application) onBlocked(side reveal.Side) {
	app.publish(events.NewBlocked(side, "surface"))
}

// onOwnership publishes an arbitration resolution.
func (app *Application) onOwnership(o reveal.Ownership, side reveal.Side) {
	app.publish(events.NewOwnership(o, side, "surface"))
}

// onSettled publishes a settle animation reaching its bound.
func (app *Application) onSettled(status reveal.SettleStatus, side reveal.Side) {
	app.publish(events.NewSettled(status, side, "surface"))
}
