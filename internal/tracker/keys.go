package tracker

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Toggle   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Expand   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		// Legacy terminals report the shifted letter, kitty-style ones the modifier.
		Toggle: key.NewBinding(
			key.WithKeys("Z", "shift+z"),
			key.WithHelp("shift+z", "hide"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "j"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up", "k"),
			key.WithHelp("shift+tab", "prev"),
		),
		Expand: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("enter", "expand"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll"),
		),
	}
}

// footerBindings are the bindings advertised in the panel footer.
func (k keyMap) footerBindings() []key.Binding {
	return []key.Binding{k.Toggle, k.Next, k.Expand, k.PageDown}
}
