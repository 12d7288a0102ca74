package reveal

// applyDrag converts a raw horizontal delta into a progress delta and
// stores the clamped running sum. Opening the left panel increases
// progress on rightward drags; opening the right panel increases it on
// leftward drags. Closing inverts accordingly, which falls out of the
// same sign rule.
func (s *Surface) applyDrag(g *gesture, rawDX float64) {
	delta := rawDX / s.width
	if g.locked == SideRight {
		delta = -delta
	}
	s.model.SetValue(s.model.Value() + delta)
	s.emit()
}

// finishDrag decides commit vs cancel for a reveal-owned release and
// starts the settle. A pointer-up commits when progress has passed the
// threshold or the signed release velocity exceeds the fling threshold
// in the opening direction. A pointer-cancel always settles to closed
// regardless of progress or velocity; a system-interrupted gesture never
// counts as a commit decision.
func (s *Surface) finishDrag(g *gesture, cancelled bool) {
	if cancelled {
		s.beginSettle(-1)
		return
	}

	if s.model.Value() > s.cfg.CommitThreshold || g.openingVelocity() > s.cfg.FlingVelocity {
		s.beginSettle(+1)
		return
	}
	s.beginSettle(-1)
}

// beginSettle starts the settle animation toward open (+1) or closed
// (-1). If the value is already at the bound the settle completes
// immediately and the terminal report is emitted here; otherwise the
// per-frame reports flow from Tick.
func (s *Surface) beginSettle(direction int) {
	switch s.model.StartSettle(direction, s.cfg.SettleDuration) {
	case SettleCompleted:
		s.emit()
		s.settled(SettleCompleted, s.active)

	case SettleDismissed:
		side := s.active
		s.active = SideNone
		s.emit()
		s.settled(SettleDismissed, side)
	}
}
