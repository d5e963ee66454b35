package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Move     key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Open     key.Binding
	Refresh  key.Binding
	Retry    key.Binding
	LoadMore key.Binding
	Toggle   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		// Move sólo aparece en la ayuda; el matching va por Left/Right/Up/Down
		Move:     key.NewBinding(key.WithKeys("left", "right", "up", "down"), key.WithHelp("←↑↓→", "move")),
		Left:     key.NewBinding(key.WithKeys("left", "h")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Top:      key.NewBinding(key.WithKeys("home", "g")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Retry:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "retry")),
		LoadMore: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "more")),
		Toggle:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "toggle error")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace", "left", "h"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Open, k.Refresh, k.Retry, k.LoadMore, k.Toggle, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// detailKeyMap es la ayuda de la pantalla de detalle.
type detailKeyMap struct {
	keyMap
}

func (k detailKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

func (k detailKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
