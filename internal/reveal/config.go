package reveal

import "time"

// Mode selects how pointer sequences are recognized.
type Mode uint8

const (
	// ModeFullSurface arbitrates any drag anywhere on the surface
	// between reveal and content using accumulated displacement.
	ModeFullSurface Mode = iota
	// ModeEdgeOnly recognizes only pointer-downs that land inside a
	// configured edge hit region; ownership is implicitly reveal and no
	// horizontal/vertical race runs.
	ModeEdgeOnly
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeEdgeOnly:
		return "edge-only"
	default:
		return "full-surface"
	}
}

// ParseMode parses a mode name. Unknown names map to ModeFullSurface.
func ParseMode(s string) Mode {
	switch s {
	case "edge-only", "edge", "edgeonly":
		return ModeEdgeOnly
	default:
		return ModeFullSurface
	}
}

// Config configures the reveal engine.
type Config struct {
	// Mode selects full-surface arbitration or edge-only recognition.
	Mode Mode

	// RecognitionDistance is the accumulated displacement, in surface
	// units, a drag must travel before ownership resolves.
	RecognitionDistance float64

	// FlingVelocity is the signed release velocity, in surface units per
	// second in the opening direction, beyond which a release commits
	// regardless of the commit threshold.
	FlingVelocity float64

	// CommitThreshold is the progress value above which a release
	// commits to fully open. Clamped to [0,1].
	CommitThreshold float64

	// SettleDuration is how long the settle animation takes to reach its
	// bound.
	SettleDuration time.Duration

	// Edges configures the per-side hit regions and enablement.
	Edges EdgeConfig
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Mode:                ModeFullSurface,
		RecognitionDistance: 5,
		FlingVelocity:       500,
		CommitThreshold:     0.5,
		SettleDuration:      300 * time.Millisecond,
		Edges:               DefaultEdgeConfig(),
	}
}

// normalize clamps cosmetic values into their valid ranges and fills
// zero values with defaults. Invalid configuration degrades, it never
// fails.
func (c Config) normalize() Config {
	if c.RecognitionDistance <= 0 {
		c.RecognitionDistance = 5
	}
	if c.FlingVelocity <= 0 {
		c.FlingVelocity = 500
	}
	if c.CommitThreshold < 0 {
		c.CommitThreshold = 0
	}
	if c.CommitThreshold > 1 {
		c.CommitThreshold = 1
	}
	if c.SettleDuration <= 0 {
		c.SettleDuration = 300 * time.Millisecond
	}
	c.Edges = c.Edges.normalize()
	return c
}
