package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vstrozzi/monkey-3d-game/internal/protocol"
)

// MonitorKeyMap defines key bindings for the experiment monitor.
type MonitorKeyMap struct {
	RotateLeft  key.Binding
	RotateRight key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	Check       key.Binding
	NextTrial   key.Binding
	Retry       key.Binding
	Blank       key.Binding
	Stop        key.Binding
	Resume      key.Binding
	Save        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultMonitorKeyMap returns the default key bindings.
func DefaultMonitorKeyMap() MonitorKeyMap {
	return MonitorKeyMap{
		RotateLeft: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "rotate left"),
		),
		RotateRight: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "rotate right"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "zoom out"),
		),
		Check: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "check"),
		),
		NextTrial: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "next trial"),
		),
		Retry: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "retry"),
		),
		Blank: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "blank"),
		),
		Stop: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "stop"),
		),
		Resume: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "resume"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s", "S"),
			key.WithHelp("S", "save round"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings to show in the mini help view.
func (k MonitorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.RotateLeft, k.RotateRight, k.Check, k.NextTrial, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k MonitorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.RotateLeft, k.RotateRight, k.ZoomIn, k.ZoomOut},
		{k.Check, k.NextTrial, k.Retry, k.Save},
		{k.Blank, k.Stop, k.Resume},
		{k.Help, k.Quit},
	}
}

// heldKey indexes the continuous commands the monitor keeps pressed.
type heldKey int

const (
	heldRotateLeft heldKey = iota
	heldRotateRight
	heldZoomIn
	heldZoomOut
	heldCount
)

// continuous maps a key message to the continuous command it holds.
func (k MonitorKeyMap) continuous(msg tea.KeyMsg) (heldKey, bool) {
	switch {
	case key.Matches(msg, k.RotateLeft):
		return heldRotateLeft, true
	case key.Matches(msg, k.RotateRight):
		return heldRotateRight, true
	case key.Matches(msg, k.ZoomIn):
		return heldZoomIn, true
	case key.Matches(msg, k.ZoomOut):
		return heldZoomOut, true
	}
	return 0, false
}

// edge maps a key message to the one-shot commands it sends.
func (k MonitorKeyMap) edge(msg tea.KeyMsg) (protocol.CommandSet, bool) {
	switch {
	case key.Matches(msg, k.Check):
		// A check always opens the door for feedback, win or not.
		return protocol.CommandSet{CheckAlignment: true, AnimationDoor: true}, true
	case key.Matches(msg, k.Blank):
		return protocol.CommandSet{BlankScreen: true}, true
	case key.Matches(msg, k.Stop):
		return protocol.CommandSet{StopRendering: true}, true
	case key.Matches(msg, k.Resume):
		return protocol.CommandSet{ResumeRendering: true}, true
	}
	return protocol.CommandSet{}, false
}

// held builds the continuous part of a command set from the pressed keys.
func held(pressed [heldCount]bool) protocol.CommandSet {
	return protocol.CommandSet{
		RotateLeft:  pressed[heldRotateLeft],
		RotateRight: pressed[heldRotateRight],
		ZoomIn:      pressed[heldZoomIn],
		ZoomOut:     pressed[heldZoomOut],
	}
}
