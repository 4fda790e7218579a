package journey

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/pathwise/internal/ui/layout"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Number  key.Binding
	Next    key.Binding
	Skip    key.Binding
	Restart key.Binding
	Home    key.Binding
	Leave   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Move")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Select:  key.NewBinding(key.WithKeys("space"), key.WithHelp("Space", "Select")),
		Number:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "Pick")),
		Next:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Next")),
		Skip:    key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("Enter", "Start now")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "Restart")),
		Home:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Home")),
		Leave:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Leave")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("Y", "Leave journey")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("N", "Keep going")),
	}
}

func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
