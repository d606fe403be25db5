package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuider/internal/engine"
	"github.com/verte-zerg/tuider/internal/orp"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24

	infoOffset   = 2
	statusOffset = 2
	minBarWidth  = 20

	pausedText = "⏸  PAUSED"
	doneText   = "── End of text ──"
)

var (
	wordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	speedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Frame is one screenful derived from engine state and terminal size.
type Frame struct {
	Word     string
	ORP      int
	Position int
	Total    int
	WPM      int
	Paused   bool
	Done     bool
	Width    int
	Height   int
}

func newFrame(st engine.State, width, height int) Frame {
	if width <= 0 {
		width = fallbackWidth
	}
	if height <= 0 {
		height = fallbackHeight
	}
	f := Frame{
		Position: st.Position,
		Total:    st.Total,
		WPM:      st.WPM,
		Paused:   st.Paused,
		Done:     st.Done,
		Width:    width,
		Height:   height,
	}
	if !st.Done {
		f.Word = st.Word
		f.ORP = orp.Offset(st.Word)
	}
	return f
}

// render lays out the frame as exactly Height lines. Rows that do not fit
// in very small terminals are dropped.
func (f Frame) render(orpStyle lipgloss.Style, hints string) string {
	lines := make([]string, f.Height)
	center := f.Height / 2

	put := func(row int, s string) {
		if row >= 0 && row < len(lines) {
			lines[row] = s
		}
	}

	put(center-infoOffset, f.infoLine())
	if !f.Done {
		put(center, f.wordLine(orpStyle))
	}
	switch {
	case f.Done:
		put(center+statusOffset, f.centered(dimStyle.Render(doneText)))
	case f.Paused:
		put(center+statusOffset, f.centered(pausedStyle.Render(pausedText)))
	}
	put(f.Height-1, f.centered(hints))

	return strings.Join(lines, "\n")
}

func (f Frame) infoLine() string {
	barWidth := max(minBarWidth, f.Width*4/10)
	progress := 0.0
	if f.Total > 0 {
		progress = float64(f.Position+1) / float64(f.Total)
	}
	info := dimStyle.Render(progressBar(progress, barWidth)) + " " +
		dimStyle.Render(fmt.Sprintf("%d/%d", f.Position+1, f.Total)) + " | " +
		speedStyle.Render(fmt.Sprintf("%d WPM", f.WPM))
	return f.centered(info)
}

// wordLine pins the ORP glyph to the center column by padding the text
// before it according to its display width.
func (f Frame) wordLine(orpStyle lipgloss.Style) string {
	runes := []rune(f.Word)
	if len(runes) == 0 {
		return ""
	}
	idx := min(f.ORP, len(runes)-1)
	before := string(runes[:idx])
	pivot := string(runes[idx])
	after := string(runes[idx+1:])

	pad := max(0, f.Width/2-runewidth.StringWidth(before))
	return strings.Repeat(" ", pad) +
		wordStyle.Render(before) +
		orpStyle.Render(pivot) +
		wordStyle.Render(after)
}

func (f Frame) centered(s string) string {
	return lipgloss.PlaceHorizontal(f.Width, lipgloss.Center, s)
}

func progressBar(progress float64, width int) string {
	inner := max(0, width-2)
	progress = max(0, min(1, progress))
	filled := int(progress*float64(inner) + 0.5)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", inner-filled) + "]"
}
