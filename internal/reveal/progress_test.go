package reveal

import (
	"testing"
	"time"
)

func TestModelSetValueClamps(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative", -0.5, 0},
		{"zero", 0, 0},
		{"mid", 0.42, 0.42},
		{"one", 1, 1},
		{"overshoot", 1.7, 1},
		{"large negative", -100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			if got := m.SetValue(tt.in); got != tt.want {
				t.Errorf("SetValue(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got := m.Value(); got != tt.want {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModelSettleReachesExactBound(t *testing.T) {
	tests := []struct {
		name      string
		start     float64
		direction int
		want      float64
		status    SettleStatus
	}{
		{"open from mid", 0.4, +1, 1, SettleCompleted},
		{"close from mid", 0.4, -1, 0, SettleDismissed},
		{"open from near zero", 0.01, +1, 1, SettleCompleted},
		{"close from near one", 0.99, -1, 0, SettleDismissed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			m.SetValue(tt.start)
			if got := m.StartSettle(tt.direction, 300*time.Millisecond); got != SettleRunning {
				t.Fatalf("StartSettle() = %v, want %v", got, SettleRunning)
			}

			var status SettleStatus
			for i := 0; i < 100; i++ {
				status, _ = m.Tick(16 * time.Millisecond)
				if status != SettleRunning {
					break
				}
			}

			if status != tt.status {
				t.Errorf("final status = %v, want %v", status, tt.status)
			}
			if got := m.Value(); got != tt.want {
				t.Errorf("final value = %v, want exactly %v", got, tt.want)
			}
			if m.Settling() {
				t.Error("Settling() = true after bound reached")
			}
		})
	}
}

func TestModelSettleMonotonic(t *testing.T) {
	m := NewModel()
	m.SetValue(0.2)
	m.StartSettle(+1, 300*time.Millisecond)

	prev := m.Value()
	for i := 0; i < 100; i++ {
		status, _ := m.Tick(7 * time.Millisecond)
		if v := m.Value(); v < prev {
			t.Fatalf("value decreased during opening settle: %v -> %v", prev, v)
		} else {
			prev = v
		}
		if status != SettleRunning {
			break
		}
	}
	if m.Value() != 1 {
		t.Errorf("final value = %v, want 1", m.Value())
	}
}

func TestModelSettleAtBoundCompletesImmediately(t *testing.T) {
	m := NewModel()
	m.SetValue(1)
	if got := m.StartSettle(+1, 300*time.Millisecond); got != SettleCompleted {
		t.Errorf("StartSettle(+1) at 1 = %v, want %v", got, SettleCompleted)
	}
	if m.Settling() {
		t.Error("Settling() = true after immediate completion")
	}

	m.SetValue(0)
	if got := m.StartSettle(-1, 300*time.Millisecond); got != SettleDismissed {
		t.Errorf("StartSettle(-1) at 0 = %v, want %v", got, SettleDismissed)
	}
}

func TestModelCancelSettleFreezesValue(t *testing.T) {
	m := NewModel()
	m.SetValue(0.3)
	m.StartSettle(+1, 300*time.Millisecond)

	m.Tick(50 * time.Millisecond)
	mid := m.Value()
	if mid <= 0.3 || mid >= 1 {
		t.Fatalf("mid-flight value = %v, want strictly between 0.3 and 1", mid)
	}

	m.CancelSettle()
	if m.Settling() {
		t.Error("Settling() = true after cancel")
	}
	if m.Value() != mid {
		t.Errorf("value after cancel = %v, want %v", m.Value(), mid)
	}

	// Ticks after cancellation must not move the value.
	if status, changed := m.Tick(16 * time.Millisecond); changed || status != SettleIdle {
		t.Errorf("Tick after cancel = (%v, %v), want (idle, false)", status, changed)
	}
}

func TestModelZeroDurationSnapsToBound(t *testing.T) {
	m := NewModel()
	m.SetValue(0.5)
	if got := m.StartSettle(+1, 0); got != SettleCompleted {
		t.Errorf("StartSettle with zero duration = %v, want %v", got, SettleCompleted)
	}
	if m.Value() != 1 {
		t.Errorf("value = %v, want 1", m.Value())
	}
}

func TestEaseOutCubicEndpoints(t *testing.T) {
	if got := easeOutCubic(0); got != 0 {
		t.Errorf("easeOutCubic(0) = %v, want 0", got)
	}
	if got := easeOutCubic(1); got != 1 {
		t.Errorf("easeOutCubic(1) = %v, want 1", got)
	}

	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := easeOutCubic(float64(i) / 100)
		if v < prev {
			t.Fatalf("easeOutCubic not monotonic at t=%v", float64(i)/100)
		}
		prev = v
	}
}

func BenchmarkModelTick(b *testing.B) {
	m := NewModel()
	for i := 0; i < b.N; i++ {
		if !m.Settling() {
			m.SetValue(0.1)
			m.StartSettle(+1, 300*time.Millisecond)
		}
		m.Tick(16 * time.Millisecond)
	}
}
