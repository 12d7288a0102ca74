package renderer

import (
	"strings"
	"testing"

	"github.com/dshills/revealkit/internal/renderer/backend"
	"github.com/dshills/revealkit/internal/renderer/core"
	"github.com/dshills/revealkit/internal/reveal"
)

func readRow(b *backend.NullBackend, row, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		sb.WriteRune(b.GetCell(x, row).Rune)
	}
	return sb.String()
}

func TestPanelWidth(t *testing.T) {
	tests := []struct {
		screen int
		want   int
	}{
		{100, 40},
		{80, 32},
		{5, 2},
		{1, 1},
		{0, 1},
	}
	for _, tt := range tests {
		if got := PanelWidth(tt.screen); got != tt.want {
			t.Errorf("PanelWidth(%d) = %d, want %d", tt.screen, got, tt.want)
		}
	}
}

func TestDrawClosedFrameShowsContentOnly(t *testing.T) {
	b := backend.NewNullBackend(80, 24)
	r := New(b)

	r.Draw(Frame{Side: reveal.SideNone, Value: 0, State: reveal.StateClosed})

	if got := readRow(b, 0, 14); got != "revealkit demo" {
		t.Errorf("row 0 = %q, want content heading", got)
	}
	if b.GetCell(0, 0).Style.Attributes.Has(core.AttrDim) {
		t.Error("content should not be dimmed while closed")
	}
	theme := DefaultTheme()
	for x := 0; x < 80; x++ {
		if b.GetCell(x, 5).Style.Background.Equals(theme.Panel.Background) {
			t.Fatalf("panel background visible at x=%d while closed", x)
		}
	}
	if b.ShowCount() != 1 {
		t.Errorf("ShowCount = %d, want 1", b.ShowCount())
	}
}

func TestDrawFullyOpenLeftPanel(t *testing.T) {
	b := backend.NewNullBackend(80, 24)
	r := New(b)

	r.Draw(Frame{Side: reveal.SideLeft, Value: 1, State: reveal.StateOpen})

	pw := PanelWidth(80)
	theme := DefaultTheme()

	// Panel body fills columns [0, pw) above the status line.
	if got := b.GetCell(0, 10).Style.Background; !got.Equals(theme.Panel.Background) {
		t.Errorf("panel background missing at left edge: %v", got)
	}
	if got := b.GetCell(pw, 10).Style.Background; got.Equals(theme.Panel.Background) {
		t.Error("panel background leaked past its width")
	}
	if got := b.GetCell(pw-1, 10).Rune; got != '│' {
		t.Errorf("border rune = %q, want '│'", got)
	}
	// Content underneath is dimmed.
	if !b.GetCell(pw+2, 0).Style.Attributes.Has(core.AttrDim) {
		t.Error("content should be dimmed behind an open panel")
	}
	// First panel item is drawn inside the panel.
	if got := readRow(b, 0, 11); !strings.HasPrefix(got[1:], "Navigation") {
		t.Errorf("panel heading row = %q", got)
	}
}

func TestDrawRightPanelAnchorsToRightEdge(t *testing.T) {
	b := backend.NewNullBackend(80, 24)
	r := New(b)

	r.Draw(Frame{Side: reveal.SideRight, Value: 0.5, State: reveal.StateOpening})

	pw := PanelWidth(80) / 2
	theme := DefaultTheme()

	if got := b.GetCell(79, 10).Style.Background; !got.Equals(theme.Panel.Background) {
		t.Errorf("right edge not covered: %v", got)
	}
	if got := b.GetCell(80-pw, 10).Rune; got != '│' {
		t.Errorf("border rune = %q, want '│'", got)
	}
	if got := b.GetCell(80-pw-1, 10).Style.Background; got.Equals(theme.Panel.Background) {
		t.Error("panel extends past its half-open width")
	}
}

func TestDrawHalfOpenPanelWidthIsProportional(t *testing.T) {
	b := backend.NewNullBackend(100, 24)
	r := New(b)

	r.Draw(Frame{Side: reveal.SideLeft, Value: 0.25, State: reveal.StateOpening})

	want := 10 // 0.25 of PanelWidth(100)=40
	theme := DefaultTheme()
	if got := b.GetCell(want-1, 5).Style.Background; !got.Equals(theme.Panel.Background) {
		t.Errorf("column %d not covered at quarter open", want-1)
	}
	if got := b.GetCell(want, 5).Style.Background; got.Equals(theme.Panel.Background) {
		t.Errorf("column %d covered at quarter open", want)
	}
}

func TestDrawStatusLine(t *testing.T) {
	b := backend.NewNullBackend(80, 24)
	r := New(b)

	r.Draw(Frame{Side: reveal.SideLeft, Value: 0.42, State: reveal.StateOpening, Status: "fps 60"})

	row := readRow(b, 23, 80)
	if !strings.Contains(row, "left") || !strings.Contains(row, "opening") {
		t.Errorf("status row = %q, want side and state", row)
	}
	if !strings.Contains(row, "42%") {
		t.Errorf("status row = %q, want percentage", row)
	}
	if !strings.Contains(row, "fps 60") {
		t.Errorf("status row = %q, want right-hand status", row)
	}
}

func TestDrawSkipsZeroSizedScreen(t *testing.T) {
	b := backend.NewNullBackend(0, 0)
	r := New(b)

	r.Draw(Frame{Side: reveal.SideLeft, Value: 1, State: reveal.StateOpen})
	if b.ShowCount() != 0 {
		t.Error("zero-sized screen should not be flushed")
	}
}

func TestSetContentAndPanelItems(t *testing.T) {
	b := backend.NewNullBackend(80, 24)
	r := New(b)
	r.SetContent([]string{"custom body"})
	r.SetPanelItems(reveal.SideLeft, []string{"custom item"})

	r.Draw(Frame{Side: reveal.SideLeft, Value: 1, State: reveal.StateOpen})

	if got := readRow(b, 0, 13); !strings.Contains(got, "custom item") {
		t.Errorf("row 0 = %q, want custom panel item", got)
	}
}

func TestScrollBy(t *testing.T) {
	b := backend.NewNullBackend(80, 24)
	r := New(b)
	r.SetContent([]string{"line one", "line two", "line three"})

	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"down one", 1, 1},
		{"down past end clamps", 10, 2},
		{"up past start clamps", -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.ScrollBy(tt.delta)
			if got := r.Scroll(); got != tt.want {
				t.Errorf("Scroll() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScrolledContentDraw(t *testing.T) {
	b := backend.NewNullBackend(80, 24)
	r := New(b)
	r.SetContent([]string{"first", "second", "third"})
	r.ScrollBy(1)

	r.Draw(Frame{Side: reveal.SideNone, Value: 0, State: reveal.StateClosed})

	if got := readRow(b, 0, 6); got != "second" {
		t.Errorf("row 0 = %q, want %q after scrolling", got, "second")
	}

	// Replacing the content resets the scroll.
	r.SetContent([]string{"fresh"})
	if got := r.Scroll(); got != 0 {
		t.Errorf("Scroll() = %d after SetContent, want 0", got)
	}
}
