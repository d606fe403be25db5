// Package logging builds the application logger.
//
// Records fan out to an optional log file and to stderr. The stderr sink
// can be muted while the terminal UI owns the screen, so warnings never
// tear a frame.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	slogmulti "github.com/samber/slog-multi"
)

// Options configures New.
type Options struct {
	// Path is the log file. Empty disables the file sink.
	Path string
	// Level is the minimum level written to the file.
	Level slog.Level
	// Console receives warnings and errors; nil means os.Stderr.
	Console io.Writer
}

// Logger is a slog.Logger with a closable file sink and a mutable console sink.
type Logger struct {
	*slog.Logger
	file  *os.File
	muted *atomic.Bool
}

// New creates a logger. The file sink is opened in append mode.
func New(opts Options) (*Logger, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	muted := new(atomic.Bool)
	handlers := []slog.Handler{
		&mutableHandler{
			Handler: slog.NewTextHandler(console, &slog.HandlerOptions{Level: slog.LevelWarn}),
			muted:   muted,
		},
	}

	var file *os.File
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	}

	return &Logger{
		Logger: slog.New(slogmulti.Fanout(handlers...)),
		file:   file,
		muted:  muted,
	}, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		muted:  new(atomic.Bool),
	}
}

// MuteConsole silences or restores the stderr sink.
func (l *Logger) MuteConsole(muted bool) {
	l.muted.Store(muted)
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("invalid log level %q (valid: debug, info, warn, error)", name)
	}
	return level, nil
}

type mutableHandler struct {
	slog.Handler
	muted *atomic.Bool
}

func (h *mutableHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return !h.muted.Load() && h.Handler.Enabled(ctx, level)
}

func (h *mutableHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.muted.Load() {
		return nil
	}
	return h.Handler.Handle(ctx, r)
}

func (h *mutableHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &mutableHandler{Handler: h.Handler.WithAttrs(attrs), muted: h.muted}
}

func (h *mutableHandler) WithGroup(name string) slog.Handler {
	return &mutableHandler{Handler: h.Handler.WithGroup(name), muted: h.muted}
}
