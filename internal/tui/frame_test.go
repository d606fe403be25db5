package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuider/internal/engine"
)

func TestWordLinePinsORPToCenter(t *testing.T) {
	cases := []struct {
		word  string
		width int
	}{
		{"a", 80},
		{"to", 80},
		{"reading", 80},
		{"extraordinarily", 81},
		{"日本語の文章", 60},
	}
	for _, tc := range cases {
		f := newFrame(engine.State{Word: tc.word, Total: 1, WPM: 300}, tc.width, 24)
		line := ansi.Strip(f.wordLine(lipgloss.NewStyle()))

		runes := []rune(tc.word)
		tail := string(runes[f.ORP:])
		if !strings.HasSuffix(line, tail) {
			t.Fatalf("%q: line %q does not end with %q", tc.word, line, tail)
		}
		prefix := strings.TrimSuffix(line, tail)
		if got := runewidth.StringWidth(prefix); got != tc.width/2 {
			t.Fatalf("%q: pivot column = %d, want %d", tc.word, got, tc.width/2)
		}
	}
}

func TestRenderLayout(t *testing.T) {
	st := engine.State{Word: "hello", Position: 4, Total: 10, WPM: 300}
	f := newFrame(st, 60, 20)
	lines := strings.Split(ansi.Strip(f.render(lipgloss.NewStyle(), "hints")), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	center := 10
	if !strings.Contains(lines[center-2], "5/10 | 300 WPM") {
		t.Fatalf("info row = %q", lines[center-2])
	}
	if strings.TrimSpace(lines[center]) != "hello" {
		t.Fatalf("word row = %q", lines[center])
	}
	if strings.TrimSpace(lines[center+2]) != "" {
		t.Fatalf("status row should be empty while playing: %q", lines[center+2])
	}
	if strings.TrimSpace(lines[19]) != "hints" {
		t.Fatalf("hint row = %q", lines[19])
	}
}

func TestRenderStatusRows(t *testing.T) {
	paused := newFrame(engine.State{Word: "x", Total: 1, WPM: 250, Paused: true}, 40, 10)
	out := ansi.Strip(paused.render(lipgloss.NewStyle(), ""))
	if !strings.Contains(out, pausedText) {
		t.Fatalf("paused frame missing status: %q", out)
	}

	done := newFrame(engine.State{Word: "x", Position: 0, Total: 1, WPM: 250, Done: true}, 40, 10)
	out = ansi.Strip(done.render(lipgloss.NewStyle(), ""))
	if !strings.Contains(out, doneText) {
		t.Fatalf("done frame missing status: %q", out)
	}
	if strings.Contains(out, pausedText) {
		t.Fatalf("done frame should not show paused: %q", out)
	}
}

func TestRenderTinyTerminal(t *testing.T) {
	f := newFrame(engine.State{Word: "word", Total: 3, WPM: 250, Paused: true}, 10, 2)
	lines := strings.Split(f.render(lipgloss.NewStyle(), "h"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
}

func TestNewFrameFallbackSize(t *testing.T) {
	f := newFrame(engine.State{Word: "w", Total: 1}, 0, 0)
	if f.Width != fallbackWidth || f.Height != fallbackHeight {
		t.Fatalf("fallback size = %dx%d", f.Width, f.Height)
	}
}

func TestProgressBar(t *testing.T) {
	cases := []struct {
		progress float64
		width    int
		want     string
	}{
		{0, 6, "[░░░░]"},
		{0.5, 6, "[██░░]"},
		{1, 6, "[████]"},
		{2, 4, "[██]"},
	}
	for _, tc := range cases {
		if got := progressBar(tc.progress, tc.width); got != tc.want {
			t.Fatalf("progressBar(%v, %d) = %q, want %q", tc.progress, tc.width, got, tc.want)
		}
	}
}
