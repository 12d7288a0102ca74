package pointer

import "testing"

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseNone, "none"},
		{PhaseDown, "down"},
		{PhaseMove, "move"},
		{PhaseUp, "up"},
		{PhaseCancel, "cancel"},
		{Phase(99), "none"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestPositionDistance(t *testing.T) {
	tests := []struct {
		name string
		a    Position
		b    Position
		want float64
	}{
		{"same point", Position{X: 5, Y: 5}, Position{X: 5, Y: 5}, 0},
		{"horizontal", Position{X: 0, Y: 0}, Position{X: 10, Y: 0}, 10},
		{"vertical", Position{X: 0, Y: 0}, Position{X: 0, Y: 7}, 7},
		{"diagonal", Position{X: 1, Y: 2}, Position{X: 4, Y: 6}, 7},
		{"negative coordinates", Position{X: -3, Y: -3}, Position{X: 3, Y: 3}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Distance(tt.b); got != tt.want {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Distance(tt.a); got != tt.want {
				t.Errorf("reverse Distance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventIsTerminal(t *testing.T) {
	tests := []struct {
		phase Phase
		want  bool
	}{
		{PhaseDown, false},
		{PhaseMove, false},
		{PhaseUp, true},
		{PhaseCancel, true},
	}

	for _, tt := range tests {
		ev := Event{Phase: tt.phase}
		if got := ev.IsTerminal(); got != tt.want {
			t.Errorf("IsTerminal() for %v = %v, want %v", tt.phase, got, tt.want)
		}
	}
}
