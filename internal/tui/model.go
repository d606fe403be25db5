// Package tui provides the Bubble Tea RSVP reader.
//
// The model is the only caller of the playback engine. Keyboard input,
// terminal resizes and word ticks all arrive as messages on the Bubble Tea
// event loop, so engine commands never interleave.
package tui

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuider/internal/engine"
	"github.com/verte-zerg/tuider/internal/model"
)

const (
	// DefaultSpeedStep is the WPM change per faster/slower key press.
	DefaultSpeedStep = 25
	// DefaultJump is the number of words skipped by a multi-word jump.
	DefaultJump = 10
)

// advanceMsg is delivered when a scheduled engine tick elapses.
type advanceMsg struct {
	id uint64
}

// Model implements the Bubble Tea reader UI.
type Model struct {
	engine   *engine.Engine
	keys     keyMap
	help     help.Model
	orpStyle lipgloss.Style
	log      *slog.Logger

	speedStep int
	jump      int
	title     string

	width  int
	height int
}

// NewModel constructs a reader model around an engine.
func NewModel(eng *engine.Engine, cfg model.ReaderConfig, orpStyle lipgloss.Style, title string, log *slog.Logger) *Model {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := help.New()
	h.Styles.ShortKey = dimStyle.Bold(true)
	h.Styles.ShortDesc = dimStyle
	h.Styles.ShortSeparator = dimStyle

	m := &Model{
		engine:    eng,
		keys:      defaultKeyMap,
		help:      h,
		orpStyle:  orpStyle,
		log:       log,
		speedStep: cfg.SpeedStep,
		jump:      cfg.Jump,
		title:     title,
	}
	if m.speedStep <= 0 {
		m.speedStep = DefaultSpeedStep
	}
	if m.jump <= 0 {
		m.jump = DefaultJump
	}
	return m
}

// Init implements tea.Model. It shows the first word and starts the
// orientation hold.
func (m *Model) Init() tea.Cmd {
	tick := m.engine.Start()
	cmds := []tea.Cmd{tickCmd(tick)}
	if m.title != "" {
		cmds = append(cmds, tea.SetWindowTitle(m.title))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case advanceMsg:
		if !m.engine.Fire(msg.id) {
			return m, nil
		}
		if st := m.engine.State(); st.Done {
			m.log.Debug("reached end of text", "words", st.Total)
		}
		return m, m.pendingCmd()
	case tea.KeyMsg:
		c := m.keys.commandFor(msg)
		if c == cmdNone {
			return m, nil
		}
		return m, m.apply(c)
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	f := newFrame(m.engine.State(), m.width, m.height)
	return f.render(m.orpStyle, m.help.View(m.keys))
}

// apply runs one command against the engine and returns a tick command
// only when the command installed a new pending tick.
func (m *Model) apply(c command) tea.Cmd {
	before, hadPending := m.engine.Pending()

	switch c {
	case cmdQuit:
		return tea.Quit
	case cmdTogglePause:
		m.engine.TogglePause()
	case cmdBack:
		m.engine.Step(-1)
	case cmdForward:
		m.engine.Step(1)
	case cmdJumpBack:
		m.engine.Step(-m.jump)
	case cmdJumpForward:
		m.engine.Step(m.jump)
	case cmdFaster:
		m.engine.AdjustSpeed(m.speedStep)
	case cmdSlower:
		m.engine.AdjustSpeed(-m.speedStep)
	case cmdRestart:
		m.engine.Restart()
	}

	st := m.engine.State()
	m.log.Debug("command", "cmd", c.String(), "position", st.Position, "wpm", st.WPM, "paused", st.Paused)

	after, ok := m.engine.Pending()
	if !ok || (hadPending && after.ID == before.ID) {
		return nil
	}
	return tickCmd(after)
}

func (m *Model) pendingCmd() tea.Cmd {
	tick, ok := m.engine.Pending()
	if !ok {
		return nil
	}
	return tickCmd(tick)
}

// Summary describes the session for the reading history.
func (m *Model) Summary(source string, startedAt, endedAt time.Time) model.ReadingSession {
	st := m.engine.State()
	return model.ReadingSession{
		StartedAt:  startedAt,
		EndedAt:    endedAt,
		Source:     source,
		TotalWords: st.Total,
		WordsRead:  m.engine.Furthest() + 1,
		FinalWPM:   st.WPM,
		Finished:   st.Done,
	}
}

func tickCmd(t engine.Tick) tea.Cmd {
	id := t.ID
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return advanceMsg{id: id}
	})
}
