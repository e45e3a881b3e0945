package customers

import (
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/roster/internal/tui/components/core/list"
)

type KeyMap struct {
	list.KeyMap

	Search,
	ClearSearch,
	AcceptSearch,
	Toggle,
	ToggleAll,
	ClearSelection,
	CopyEmails,
	Compact,
	Help key.Binding

	// Sort cycles the sort of the column at the same position.
	Sort []key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		KeyMap: list.DefaultKeyMap(),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		AcceptSearch: key.NewBinding(
			key.WithKeys("enter", "tab"),
			key.WithHelp("enter", "done"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("space", " "),
			key.WithHelp("space", "select"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select shown"),
		),
		ClearSelection: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear selection"),
		),
		CopyEmails: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy emails"),
		),
		Compact: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "compact"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Sort: []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "sort name")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "sort email")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "sort phone")),
			key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "sort score")),
			key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "sort last message")),
			key.NewBinding(key.WithKeys("6"), key.WithHelp("6", "sort added by")),
		},
	}
}

// KeyBindings lists the bindings in help order.
func (k KeyMap) KeyBindings() []key.Binding {
	return append([]key.Binding{
		k.Search,
		k.ClearSearch,
		k.Toggle,
		k.ToggleAll,
		k.ClearSelection,
		k.CopyEmails,
		k.Compact,
		k.Help,
	}, append(k.KeyMap.KeyBindings(), k.Sort...)...)
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	m := [][]key.Binding{}
	slice := k.KeyBindings()
	for i := 0; i < len(slice); i += 4 {
		end := min(i+4, len(slice))
		m = append(m, slice[i:end])
	}
	return m
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Search,
		k.Toggle,
		k.ToggleAll,
		k.CopyEmails,
		k.Help,
	}
}

// searchKeyMap is shown while the search input has focus.
type searchKeyMap struct {
	KeyMap
}

func (k searchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.AcceptSearch,
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
	}
}

func (k searchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
