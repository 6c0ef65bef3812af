package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the canvas key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Add      key.Binding
	NextKind key.Binding
	Next     key.Binding
	Prev     key.Binding
	Connect  key.Binding
	Enter    key.Binding
	Back     key.Binding
	Delete   key.Binding
	Inspect  key.Binding
	Toggle   key.Binding
	Save     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap is the binding set used by New.
var DefaultKeyMap = KeyMap{
	Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "nudge up")),
	Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "nudge down")),
	Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "nudge left")),
	Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "nudge right")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add block")),
	NextKind: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next kind")),
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "select next")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "select prev")),
	Connect:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect from")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Delete:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
	Inspect:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
	Toggle:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
	Save:     key.NewBinding(key.WithKeys("w", "ctrl+s"), key.WithHelp("w", "save")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.NextKind, k.Next, k.Connect, k.Inspect, k.Delete, k.Save, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Add, k.NextKind, k.Next, k.Prev},
		{k.Connect, k.Enter, k.Back},
		{k.Inspect, k.Toggle, k.Delete, k.Save, k.Quit},
	}
}
