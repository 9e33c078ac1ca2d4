package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the normal mode key bindings. Insert mode is handled
// directly off the key event stream so that plain typing stays fast.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	LineStart key.Binding
	LineEnd   key.Binding

	Insert    key.Binding
	Append    key.Binding
	OpenBelow key.Binding
	OpenAbove key.Binding

	Confirm key.Binding
	Indent  key.Binding
	Outdent key.Binding

	DeleteChar key.Binding
	DeleteLine key.Binding

	Save key.Binding
	Quit key.Binding
	Help key.Binding
}

// DefaultKeyMap returns the standard binding set.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("0", "home"),
			key.WithHelp("0", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("$", "end"),
			key.WithHelp("$", "line end"),
		),
		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insert"),
		),
		Append: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "append"),
		),
		OpenBelow: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open below"),
		),
		OpenAbove: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "open above"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm item"),
		),
		Indent: key.NewBinding(
			key.WithKeys("tab", ">"),
			key.WithHelp("tab", "indent"),
		),
		Outdent: key.NewBinding(
			key.WithKeys("shift+tab", "<"),
			key.WithHelp("s-tab", "outdent"),
		),
		DeleteChar: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete char"),
		),
		DeleteLine: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete line"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp is the single-line hint shown under the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.Confirm, k.Indent, k.Save, k.Quit, k.Help}
}

// FullHelp is the expanded view toggled with "?".
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.LineStart, k.LineEnd},
		{k.Insert, k.Append, k.OpenBelow, k.OpenAbove},
		{k.Confirm, k.Indent, k.Outdent, k.DeleteChar, k.DeleteLine},
		{k.Save, k.Quit, k.Help},
	}
}
