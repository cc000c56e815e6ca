package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/quest"
)

// KeyMap defines the key bindings available while playing.
type KeyMap struct {
	Start      key.Binding
	Kiss       key.Binding
	Again      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "begin"),
		),
		Kiss: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "kiss"),
		),
		Again: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "play again"),
		),
		Restart: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Kiss, k.Again, k.Restart, k.Quit, k.ForceQuit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Kiss, k.Again},
		{k.Restart, k.Screenshot, k.Quit, k.ForceQuit},
	}
}

// forLevel enables only the bindings that do something on lvl. On
// Level 3 every printable key is typed, so only control chords remain.
func (k KeyMap) forLevel(lvl quest.Level) KeyMap {
	k.Start.SetEnabled(lvl == quest.Start)
	k.Kiss.SetEnabled(lvl == quest.Level4)
	k.Again.SetEnabled(lvl == quest.Start || lvl == quest.Victory)
	k.Quit.SetEnabled(lvl != quest.Level3)
	k.ForceQuit.SetEnabled(lvl == quest.Level3)
	return k
}

// MapKey translates a key message to a session action for the given
// level. Keys that map to nothing return ActionNone; on Level 3 those go
// to the text input.
func (k KeyMap) MapKey(msg tea.KeyMsg, lvl quest.Level) core.Action {
	k = k.forLevel(lvl)

	switch {
	case key.Matches(msg, k.ForceQuit), key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Restart), key.Matches(msg, k.Again):
		return core.ActionRestart
	case key.Matches(msg, k.Screenshot):
		return core.ActionScreenshot
	case key.Matches(msg, k.Start):
		return core.ActionStart
	case key.Matches(msg, k.Kiss):
		return core.ActionKiss
	}
	return core.ActionNone
}
