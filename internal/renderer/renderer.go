// Package renderer draws the demo surface: a column of content text, a
// side panel that slides in proportionally to the reveal value, and a
// status line summarizing the interaction state.
package renderer

import (
	"fmt"
	"strings"

	"github.com/dshills/revealkit/internal/renderer/backend"
	"github.com/dshills/revealkit/internal/renderer/core"
	"github.com/dshills/revealkit/internal/reveal"
)

// Frame is one snapshot of reveal state to draw.
type Frame struct {
	Side   reveal.Side
	Value  float64
	State  reveal.State
	Status string
}

// Theme holds the styles the renderer draws with.
type Theme struct {
	Content     core.Style
	Panel       core.Style
	PanelBorder core.Style
	StatusLine  core.Style
}

// DefaultTheme returns the stock look: default-colored content, an
// inverted panel, and a reversed status line.
func DefaultTheme() Theme {
	return Theme{
		Content:     core.DefaultStyle(),
		Panel:       core.NewStyle(core.ColorBlack).WithBackground(core.ColorGray),
		PanelBorder: core.NewStyle(core.ColorWhite).WithBackground(core.ColorGray).Bold(),
		StatusLine:  core.DefaultStyle().Reverse(),
	}
}

var defaultContent = []string{
	"revealkit demo",
	"",
	"Drag horizontally from anywhere to pull a panel in.",
	"Release past the midpoint, or fling, to commit it open.",
	"Drag vertically to scroll content instead.",
	"",
	"Keys: h opens left, l opens right, Esc closes, q quits.",
}

var defaultPanelItems = map[reveal.Side][]string{
	reveal.SideLeft:  {"Navigation", "", "> Inbox", "  Archive", "  Settings"},
	reveal.SideRight: {"Details", "", "Nothing selected."},
}

// Renderer draws frames through a Backend.
type Renderer struct {
	backend backend.Backend
	theme   Theme
	content []string
	panels  map[reveal.Side][]string
	scroll  int
}

// New creates a renderer with the default theme and demo content.
func New(b backend.Backend) *Renderer {
	return &Renderer{
		backend: b,
		theme:   DefaultTheme(),
		content: defaultContent,
		panels:  defaultPanelItems,
	}
}

// SetTheme replaces the renderer's theme.
func (r *Renderer) SetTheme(theme Theme) {
	r.theme = theme
}

// SetContent replaces the content column lines and resets the scroll.
func (r *Renderer) SetContent(lines []string) {
	r.content = lines
	r.scroll = 0
}

// SetPanelItems replaces the item lines for one panel.
func (r *Renderer) SetPanelItems(side reveal.Side, lines []string) {
	r.panels[side] = lines
}

// ScrollBy moves the first drawn content line by delta, clamped to the
// content bounds.
func (r *Renderer) ScrollBy(delta int) {
	r.scroll += delta
	if r.scroll >= len(r.content) {
		r.scroll = len(r.content) - 1
	}
	if r.scroll < 0 {
		r.scroll = 0
	}
}

// Scroll returns the index of the first drawn content line.
func (r *Renderer) Scroll() int {
	return r.scroll
}

// PanelWidth returns the column count a fully open panel occupies on a
// screen of the given width.
func PanelWidth(screenWidth int) int {
	w := screenWidth * 2 / 5
	if w < 1 {
		w = 1
	}
	return w
}

// Draw renders one frame and flushes it.
func (r *Renderer) Draw(f Frame) {
	width, height := r.backend.Size()
	if width <= 0 || height <= 0 {
		return
	}

	r.backend.Clear()
	r.drawContent(f, width, height)
	r.drawPanel(f, width, height)
	r.drawStatusLine(f, width, height)
	r.backend.Show()
}

func (r *Renderer) drawContent(f Frame, width, height int) {
	style := r.theme.Content
	if f.Value > 0 {
		style = style.Dim()
	}
	for row, line := range r.content[r.scroll:] {
		if row >= height-1 {
			break
		}
		r.drawText(0, row, width, line, style)
	}
}

func (r *Renderer) drawPanel(f Frame, width, height int) {
	if f.Side == reveal.SideNone || f.Value <= 0 {
		return
	}

	pw := int(f.Value*float64(PanelWidth(width)) + 0.5)
	if pw <= 0 {
		return
	}

	var rect core.ScreenRect
	var borderX int
	if f.Side == reveal.SideLeft {
		rect = core.NewScreenRect(0, 0, height-1, pw)
		borderX = pw - 1
	} else {
		rect = core.NewScreenRect(0, width-pw, height-1, width)
		borderX = width - pw
	}

	r.backend.Fill(rect, core.NewStyledCell(' ', r.theme.Panel))

	textLeft := rect.Left + 1
	textWidth := rect.Width() - 2
	if f.Side == reveal.SideRight {
		textLeft = rect.Left + 2
	}
	for row, line := range r.panels[f.Side] {
		if row >= rect.Bottom || textWidth <= 0 {
			break
		}
		r.drawText(textLeft, row, textWidth, line, r.theme.Panel)
	}

	for y := rect.Top; y < rect.Bottom; y++ {
		r.backend.SetCell(borderX, y, core.NewStyledCell('│', r.theme.PanelBorder))
	}
}

func (r *Renderer) drawStatusLine(f Frame, width, height int) {
	row := height - 1
	r.backend.Fill(core.NewScreenRect(row, 0, row+1, width), core.NewStyledCell(' ', r.theme.StatusLine))

	left := fmt.Sprintf(" %s  %s  %3.0f%%", sideLabel(f.Side), f.State, f.Value*100)
	r.drawText(0, row, width, left, r.theme.StatusLine)

	if f.Status != "" && len(f.Status) < width-len(left)-2 {
		r.drawText(width-len(f.Status)-1, row, len(f.Status), f.Status, r.theme.StatusLine)
	}
}

func (r *Renderer) drawText(x, y, maxWidth int, text string, style core.Style) {
	col := x
	for _, ch := range text {
		w := core.RuneWidth(ch)
		if w == 0 || col+w > x+maxWidth {
			break
		}
		r.backend.SetCell(col, y, core.NewStyledCell(ch, style))
		col += w
	}
}

func sideLabel(s reveal.Side) string {
	if s == reveal.SideNone {
		return strings.Repeat("·", 4)
	}
	return s.String()
}
