// Package engine owns RSVP playback state and the single pending word timer.
//
// All mutation goes through the command methods on [Engine]. Wake-ups are
// represented as [Tick] values: the caller arranges for [Engine.Fire] to be
// invoked with the tick's ID once its delay elapses. Cancelling a tick only
// forgets its ID, so a late delivery of a cancelled tick is a no-op and two
// advances can never fire for the same slot.
package engine

import (
	"errors"
	"time"

	"github.com/verte-zerg/tuider/internal/pacing"
)

const (
	// DefaultMinWPM is the lowest playback speed.
	DefaultMinWPM = 60
	// DefaultMaxWPM is the highest playback speed.
	DefaultMaxWPM = 1000
	// DefaultOrientationDelay is how long the first word is held before playback starts.
	DefaultOrientationDelay = time.Second
)

// ErrNoWords is returned when a session is created without words.
var ErrNoWords = errors.New("no words to read")

// TickKind distinguishes the orientation hold from ordinary word advances.
type TickKind int

const (
	// TickAdvance moves to the next word when fired.
	TickAdvance TickKind = iota
	// TickOrientation starts playback when fired.
	TickOrientation
)

// Tick is a scheduled wake-up. At most one is pending at any time.
type Tick struct {
	ID    uint64
	Delay time.Duration
	Kind  TickKind
}

// Pacer computes how long a word is displayed at a speed.
type Pacer func(word string, wpm int) time.Duration

// Option configures an Engine.
type Option func(*Engine)

// WithSpeedBounds sets the inclusive WPM range.
func WithSpeedBounds(minWPM, maxWPM int) Option {
	return func(e *Engine) {
		if minWPM > 0 && maxWPM >= minWPM {
			e.minWPM = minWPM
			e.maxWPM = maxWPM
		}
	}
}

// WithOrientationDelay sets how long the first word is shown before playback.
func WithOrientationDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.orientation = d
		}
	}
}

// WithPacer replaces the word delay function.
func WithPacer(p Pacer) Option {
	return func(e *Engine) {
		if p != nil {
			e.pacer = p
		}
	}
}

// State is a read-only snapshot of the session.
type State struct {
	Word      string
	Position  int
	Total     int
	WPM       int
	Paused    bool
	Done      bool
	Orienting bool
}

// Engine is the playback state machine. It is not safe for concurrent use;
// callers serialize commands through one event loop.
type Engine struct {
	words []string

	position int
	furthest int
	wpm      int
	paused   bool
	done     bool

	orienting bool
	pending   *Tick
	lastID    uint64

	minWPM      int
	maxWPM      int
	orientation time.Duration
	pacer       Pacer
}

// New creates a session over words starting at wpm.
func New(words []string, wpm int, opts ...Option) (*Engine, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	e := &Engine{
		words:       append([]string(nil), words...),
		minWPM:      DefaultMinWPM,
		maxWPM:      DefaultMaxWPM,
		orientation: DefaultOrientationDelay,
		pacer:       pacing.Delay,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.wpm = e.clampSpeed(wpm)
	return e, nil
}

// Start shows the first word and installs the orientation tick.
func (e *Engine) Start() Tick {
	e.cancel()
	e.position = 0
	e.done = false
	e.paused = false
	e.orienting = true
	return e.schedule(e.orientation, TickOrientation)
}

// Fire handles a tick delivery. It reports whether state changed.
func (e *Engine) Fire(id uint64) bool {
	if e.pending == nil || e.pending.ID != id {
		return false
	}
	tick := *e.pending
	e.pending = nil
	if e.paused || e.done {
		return false
	}

	if tick.Kind == TickOrientation {
		e.orienting = false
		e.scheduleCurrent()
		return true
	}

	if e.position+1 >= len(e.words) {
		e.done = true
		return true
	}
	e.position++
	e.markFurthest()
	e.scheduleCurrent()
	return true
}

// TogglePause switches between playing and paused. Resuming always waits a
// full delay for the word on screen. It is a no-op once the text is done.
func (e *Engine) TogglePause() {
	if e.done {
		return
	}
	if e.paused {
		e.paused = false
		e.scheduleCurrent()
		return
	}
	e.cancel()
	e.orienting = false
	e.paused = true
}

// Jump moves to target, clamped into the word range, and clears done.
func (e *Engine) Jump(target int) {
	e.cancel()
	e.orienting = false
	e.position = clamp(target, 0, len(e.words)-1)
	e.markFurthest()
	e.done = false
	if !e.paused {
		e.scheduleCurrent()
	}
}

// Step jumps by delta words relative to the current position.
func (e *Engine) Step(delta int) {
	e.Jump(e.position + delta)
}

// Restart jumps back to the first word.
func (e *Engine) Restart() {
	e.Jump(0)
}

// AdjustSpeed changes the speed by delta. The pending tick keeps its delay;
// the new speed applies from the next scheduled word.
func (e *Engine) AdjustSpeed(delta int) {
	e.wpm = e.clampSpeed(e.wpm + delta)
}

// Pending returns the outstanding tick, if any.
func (e *Engine) Pending() (Tick, bool) {
	if e.pending == nil {
		return Tick{}, false
	}
	return *e.pending, true
}

// State returns a snapshot for rendering.
func (e *Engine) State() State {
	return State{
		Word:      e.words[e.position],
		Position:  e.position,
		Total:     len(e.words),
		WPM:       e.wpm,
		Paused:    e.paused,
		Done:      e.done,
		Orienting: e.orienting,
	}
}

// Furthest returns the highest word index shown so far.
func (e *Engine) Furthest() int {
	return e.furthest
}

// Bounds returns the inclusive speed range.
func (e *Engine) Bounds() (minWPM, maxWPM int) {
	return e.minWPM, e.maxWPM
}

func (e *Engine) scheduleCurrent() {
	e.schedule(e.pacer(e.words[e.position], e.wpm), TickAdvance)
}

func (e *Engine) schedule(d time.Duration, kind TickKind) Tick {
	e.lastID++
	e.pending = &Tick{ID: e.lastID, Delay: d, Kind: kind}
	return *e.pending
}

func (e *Engine) cancel() {
	e.pending = nil
}

func (e *Engine) markFurthest() {
	if e.position > e.furthest {
		e.furthest = e.position
	}
}

func (e *Engine) clampSpeed(wpm int) int {
	return clamp(wpm, e.minWPM, e.maxWPM)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
