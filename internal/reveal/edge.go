package reveal

import "github.com/dshills/revealkit/internal/pointer"

// Zone describes one side's edge hit region and enablement.
type Zone struct {
	// Enabled gates whether gestures may engage this side.
	Enabled bool

	// HitWidth is the width of the edge strip, in surface units, inside
	// which edge-only pointer-downs are recognized.
	HitWidth float64

	// TopInset shrinks the hit region from the top of the surface.
	TopInset float64

	// BottomInset shrinks the hit region from the bottom of the surface.
	BottomInset float64
}

// EdgeConfig holds both sides' zones.
type EdgeConfig struct {
	Left  Zone
	Right Zone
}

// DefaultEdgeConfig returns both sides enabled with a 20-unit hit strip.
func DefaultEdgeConfig() EdgeConfig {
	z := Zone{Enabled: true, HitWidth: 20}
	return EdgeConfig{Left: z, Right: z}
}

// normalize clamps negative geometry to zero.
func (c EdgeConfig) normalize() EdgeConfig {
	c.Left = c.Left.normalize()
	c.Right = c.Right.normalize()
	return c
}

func (z Zone) normalize() Zone {
	if z.HitWidth < 0 {
		z.HitWidth = 0
	}
	if z.TopInset < 0 {
		z.TopInset = 0
	}
	if z.BottomInset < 0 {
		z.BottomInset = 0
	}
	return z
}

// EdgeZones is the runtime edge-zone model: pure configuration, no
// behavior beyond enablement checks and hit testing. Changing enablement
// while a gesture for that side is in flight does not retroactively
// cancel it; only subsequently initiated gestures see the change.
type EdgeZones struct {
	cfg EdgeConfig
}

// NewEdgeZones creates an edge-zone model from the given configuration.
func NewEdgeZones(cfg EdgeConfig) *EdgeZones {
	return &EdgeZones{cfg: cfg.normalize()}
}

// IsEnabled returns whether gestures may engage the given side.
func (e *EdgeZones) IsEnabled(side Side) bool {
	switch side {
	case SideLeft:
		return e.cfg.Left.Enabled
	case SideRight:
		return e.cfg.Right.Enabled
	default:
		return false
	}
}

// Zone returns the zone geometry for a side.
func (e *EdgeZones) Zone(side Side) Zone {
	switch side {
	case SideLeft:
		return e.cfg.Left
	case SideRight:
		return e.cfg.Right
	default:
		return Zone{}
	}
}

// Apply replaces the edge configuration. In-flight gestures are not
// affected.
func (e *EdgeZones) Apply(cfg EdgeConfig) {
	e.cfg = cfg.normalize()
}

// SetEnabled flips one side's enablement.
func (e *EdgeZones) SetEnabled(side Side, enabled bool) {
	switch side {
	case SideLeft:
		e.cfg.Left.Enabled = enabled
	case SideRight:
		e.cfg.Right.Enabled = enabled
	}
}

// Hit returns which side's hit region contains the position, or
// SideNone. The left zone wins if the regions overlap on a narrow
// surface.
func (e *EdgeZones) Hit(pos pointer.Position, width, height float64) Side {
	if e.contains(e.cfg.Left, pos, height) && pos.X <= e.cfg.Left.HitWidth {
		return SideLeft
	}
	if e.contains(e.cfg.Right, pos, height) && pos.X >= width-e.cfg.Right.HitWidth {
		return SideRight
	}
	return SideNone
}

// contains checks the vertical extent of a zone.
func (e *EdgeZones) contains(z Zone, pos pointer.Position, height float64) bool {
	if pos.Y < z.TopInset {
		return false
	}
	if height > 0 && pos.Y > height-z.BottomInset {
		return false
	}
	return true
}
