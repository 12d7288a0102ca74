package reveal

// Controller is the programmatic command port of a Surface. Commands
// take precedence over an in-flight gesture: the live gesture is
// discarded first and produces no further deltas. Because the
// controller and the pointer path share one authoritative Surface,
// gesture-driven changes are immediately observable here.
type Controller struct {
	surface *Surface
}

// OpenLeft reveals the left panel, settling progress to exactly 1.
func (c *Controller) OpenLeft() {
	c.surface.commandOpen(SideLeft)
}

// OpenRight reveals the right panel, settling progress to exactly 1.
func (c *Controller) OpenRight() {
	c.surface.commandOpen(SideRight)
}

// Open reveals the given panel side. SideNone is a no-op.
func (c *Controller) Open(side Side) {
	if side == SideNone {
		return
	}
	c.surface.commandOpen(side)
}

// Close settles progress to exactly 0; the active side clears once the
// settle reaches dismissed.
func (c *Controller) Close() {
	c.surface.commandClose()
}

// CurrentSide returns the active panel side, SideNone when closed.
func (c *Controller) CurrentSide() Side {
	return c.surface.CurrentSide()
}

// Value returns the current progress value.
func (c *Controller) Value() float64 {
	return c.surface.Value()
}

// State returns the current derived reveal state.
func (c *Controller) State() State {
	return c.surface.State()
}

// IsOpen returns true when progress is exactly 1.
func (c *Controller) IsOpen() bool {
	return c.surface.Value() == 1
}

// commandOpen is the programmatic open path: it always wins over a live
// gesture.
func (s *Surface) commandOpen(side Side) {
	if s.closed {
		return
	}
	s.gesture = nil
	s.model.CancelSettle()
	s.active = side
	s.beginSettle(+1)
}

// commandClose is the programmatic close path.
func (s *Surface) commandClose() {
	if s.closed {
		return
	}
	s.gesture = nil
	s.model.CancelSettle()
	s.beginSettle(-1)
}
