package tui

import "charm.land/bubbles/v2/key"

// keyMap holds the demo screen's own bindings. The tracker's bindings are
// not listed here; it owns them.
type keyMap struct {
	AddItem     key.Binding
	RemoveItem  key.Binding
	ToggleLogin key.Binding
	Help        key.Binding
	CloseHelp   key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		AddItem: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "add item"),
		),
		RemoveItem: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "remove item"),
		),
		ToggleLogin: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log in / out"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		CloseHelp: key.NewBinding(
			key.WithKeys("esc", "?"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// panelBindings documents the tracker keys in the help dialog.
func panelBindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("Z"), key.WithHelp("shift+z", "show / hide store panel")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab/j/k", "move between stores")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand / collapse")),
		key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgup/pgdn", "scroll a store")),
		key.NewBinding(key.WithKeys("click"), key.WithHelp("click", "toggle a store or close")),
	}
}
