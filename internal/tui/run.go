package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/verte-zerg/tuider/internal/engine"
	"github.com/verte-zerg/tuider/internal/logging"
	"github.com/verte-zerg/tuider/internal/model"
	"github.com/verte-zerg/tuider/internal/pacing"
)

// Synchronized output (DEC private mode 2026). Terminals without support
// ignore both sequences.
const (
	beginSync = "\x1b[?2026h"
	endSync   = "\x1b[?2026l"
)

// Options configures Run.
type Options struct {
	Reader model.ReaderConfig
	// Source labels the document in the window title and the history.
	Source string
	// StdinIsTTY reports whether keys can be read from stdin. When false
	// the controlling terminal is opened instead.
	StdinIsTTY bool
	Logger     *logging.Logger
	// Output is the terminal to draw on; nil means os.Stdout.
	Output *os.File
}

// Run shows words until the user quits and returns a summary of the
// session. The terminal is restored on every return path.
func Run(ctx context.Context, words []string, opts Options) (model.ReadingSession, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	orpStyle, err := ORPStyle(opts.Reader.ORPColor)
	if err != nil {
		return model.ReadingSession{}, err
	}

	eng, err := engine.New(words, opts.Reader.WPM,
		engine.WithPacer(pacing.Delay),
		engine.WithOrientationDelay(opts.Reader.Orientation),
	)
	if err != nil {
		return model.ReadingSession{}, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	reader := NewModel(eng, opts.Reader, orpStyle, windowTitle(opts.Source), log.Logger)

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(syncOutput{File: out}),
		tea.WithAltScreen(),
	}
	if !opts.StdinIsTTY {
		programOpts = append(programOpts, tea.WithInputTTY())
	}

	log.MuteConsole(true)
	defer log.MuteConsole(false)
	defer restoreTerminal(out)

	startedAt := time.Now()
	log.Info("reading started", "source", opts.Source, "words", len(words), "wpm", eng.State().WPM)

	program := tea.NewProgram(reader, programOpts...)
	_, runErr := program.Run()
	endedAt := time.Now()

	summary := reader.Summary(opts.Source, startedAt, endedAt)
	log.Info("reading stopped",
		"source", opts.Source,
		"position", eng.State().Position,
		"words_read", summary.WordsRead,
		"finished", summary.Finished,
	)

	if runErr != nil && !isNormalExit(runErr) {
		return summary, fmt.Errorf("run reader: %w", runErr)
	}
	return summary, nil
}

func isNormalExit(err error) bool {
	return errors.Is(err, tea.ErrInterrupted) || errors.Is(err, tea.ErrProgramKilled)
}

func windowTitle(source string) string {
	source = strings.TrimSpace(source)
	if source == "" {
		return "tuider"
	}
	return "tuider: " + source
}

// syncOutput brackets every write with synchronized-output markers so a
// frame is presented as a whole. It embeds the file so the program still
// detects a terminal and its size.
type syncOutput struct {
	*os.File
}

func (s syncOutput) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	buf := make([]byte, 0, len(beginSync)+len(p)+len(endSync))
	buf = append(buf, beginSync...)
	buf = append(buf, p...)
	buf = append(buf, endSync...)
	if _, err := s.File.Write(buf); err != nil {
		return 0, err
	}
	return len(p), nil
}

// restoreTerminal makes the cursor visible and resets text attributes.
func restoreTerminal(w io.Writer) {
	o := termenv.NewOutput(w)
	o.ShowCursor()
	o.Reset()
}
