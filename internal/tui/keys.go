package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// command is a playback action requested from the keyboard.
type command int

const (
	cmdNone command = iota
	cmdTogglePause
	cmdBack
	cmdForward
	cmdJumpBack
	cmdJumpForward
	cmdFaster
	cmdSlower
	cmdRestart
	cmdQuit
)

var commandNames = map[command]string{
	cmdNone:        "none",
	cmdTogglePause: "toggle-pause",
	cmdBack:        "back",
	cmdForward:     "forward",
	cmdJumpBack:    "jump-back",
	cmdJumpForward: "jump-forward",
	cmdFaster:      "faster",
	cmdSlower:      "slower",
	cmdRestart:     "restart",
	cmdQuit:        "quit",
}

func (c command) String() string {
	return commandNames[c]
}

// keyMap defines all keybindings for the reader.
type keyMap struct {
	Pause       key.Binding
	Back        key.Binding
	Forward     key.Binding
	JumpBack    key.Binding
	JumpForward key.Binding
	Faster      key.Binding
	Slower      key.Binding
	Restart     key.Binding
	Quit        key.Binding
}

var defaultKeyMap = keyMap{
	Pause: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "pause"),
	),
	Back: key.NewBinding(
		key.WithKeys("left", "b"),
		key.WithHelp("←/b", "back"),
	),
	Forward: key.NewBinding(
		key.WithKeys("right", "f"),
		key.WithHelp("→/f", "fwd"),
	),
	JumpBack: key.NewBinding(
		key.WithKeys("shift+left", "B"),
		key.WithHelp("⇧←/⇧→", "jump"),
	),
	JumpForward: key.NewBinding(
		key.WithKeys("shift+right", "F"),
		key.WithHelp("⇧←/⇧→", "jump"),
	),
	Faster: key.NewBinding(
		key.WithKeys("up", "+", "="),
		key.WithHelp("↑/+", "faster"),
	),
	Slower: key.NewBinding(
		key.WithKeys("down", "-", "_"),
		key.WithHelp("↓/-", "slower"),
	),
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns bindings for the control hint line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Back, k.Forward, k.JumpBack, k.Faster, k.Slower, k.Restart, k.Quit}
}

// FullHelp returns bindings grouped by purpose.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Restart},
		{k.Back, k.Forward, k.JumpBack, k.JumpForward},
		{k.Faster, k.Slower},
		{k.Quit},
	}
}

// commandFor maps a key press to a command; unknown keys map to cmdNone.
func (k keyMap) commandFor(msg tea.KeyMsg) command {
	bindings := []struct {
		binding key.Binding
		cmd     command
	}{
		{k.Quit, cmdQuit},
		{k.Pause, cmdTogglePause},
		{k.JumpBack, cmdJumpBack},
		{k.JumpForward, cmdJumpForward},
		{k.Back, cmdBack},
		{k.Forward, cmdForward},
		{k.Faster, cmdFaster},
		{k.Slower, cmdSlower},
		{k.Restart, cmdRestart},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.cmd
		}
	}
	return cmdNone
}
