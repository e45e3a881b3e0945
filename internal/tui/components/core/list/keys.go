package list

import (
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// KeyMap moves a row cursor through a list.
type KeyMap struct {
	Up,
	Down,
	PageUp,
	PageDown,
	HalfPageUp,
	HalfPageDown,
	Home,
	End key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("f/pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("b/pgup", "page up"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "½ page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "½ page down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/home", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G/end", "end"),
		),
	}
}

// Target resolves a navigation key to the new cursor position among count
// items, page being the number of items that fit on screen. It reports
// false for keys that are not navigation keys.
func (k KeyMap) Target(msg tea.KeyPressMsg, cursor, page, count int) (int, bool) {
	page = max(1, page)
	var target int
	switch {
	case key.Matches(msg, k.Up):
		target = cursor - 1
	case key.Matches(msg, k.Down):
		target = cursor + 1
	case key.Matches(msg, k.PageUp):
		target = cursor - page
	case key.Matches(msg, k.PageDown):
		target = cursor + page
	case key.Matches(msg, k.HalfPageUp):
		target = cursor - max(1, page/2)
	case key.Matches(msg, k.HalfPageDown):
		target = cursor + max(1, page/2)
	case key.Matches(msg, k.Home):
		target = 0
	case key.Matches(msg, k.End):
		target = count - 1
	default:
		return cursor, false
	}
	return min(max(0, target), max(0, count-1)), true
}

// KeyBindings lists the bindings in help order.
func (k KeyMap) KeyBindings() []key.Binding {
	return []key.Binding{
		k.Down,
		k.Up,
		k.PageDown,
		k.PageUp,
		k.HalfPageDown,
		k.HalfPageUp,
		k.Home,
		k.End,
	}
}
