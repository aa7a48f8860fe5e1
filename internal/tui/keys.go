package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	SwitchTab key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	SelectAll key.Binding
	Add       key.Binding
	Edit      key.Binding
	Copy      key.Binding
	Delete    key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Grab      key.Binding
	Save      key.Binding
	Open      key.Binding
	Quit      key.Binding
	Cancel    key.Binding
	Reveal    key.Binding
	Submit    key.Binding
	Next      key.Binding
	Prev      key.Binding
}

var keys = keyMap{
	SwitchTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "events/secrets")),
	Up:        key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓", "down")),
	Select:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	SelectAll: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "all/none")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:      key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
	Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	MoveUp:    key.NewBinding(key.WithKeys("K", "ctrl+up", "shift+up"), key.WithHelp("K", "move up")),
	MoveDown:  key.NewBinding(key.WithKeys("J", "ctrl+down", "shift+down"), key.WithHelp("J", "move down")),
	Grab:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "grab/drop")),
	Save:      key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
	Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Cancel:    key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "cancel")),
	Reveal:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "show/hide")),
	Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
}

func helpLine(bs ...key.Binding) string {
	out := ""
	for i, b := range bs {
		if !b.Enabled() {
			continue
		}
		if i > 0 && out != "" {
			out += "   "
		}
		h := b.Help()
		out += h.Key + ": " + h.Desc
	}
	return out
}
