package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"clarity-board/internal/docs"
)

type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	PickUp key.Binding
	Drop   key.Binding
	Cancel key.Binding
	Resync key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "column left")),
		Right:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "column right")),
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		PickUp: key.NewBinding(key.WithKeys(" ", "m"), key.WithHelp("space/m", "pick up")),
		Drop:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Resync: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// idleKeys / dragKeys feed the footer help line for each mode.
type idleKeys struct{ keyMap }

func (k idleKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Down, k.PickUp, k.Resync, k.Help, k.Quit}
}

func (k idleKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type dragKeys struct{ keyMap }

func (k dragKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Down, k.Drop, k.Cancel}
}

func (k dragKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var helpMarkdown = docs.MustGet("board")
