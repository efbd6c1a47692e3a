package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	background key.Binding
	foreground key.Binding
	markRead   key.Binding
	copyUser   key.Binding
	version    key.Binding
	esc        key.Binding
	enter      key.Binding
	quit       key.Binding
}

var keys = keyMap{
	background: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "background")),
	foreground: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "foreground")),
	markRead:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "mark all read")),
	copyUser:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy user id")),
	version:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "version")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) helpLine() string {
	line := ""
	for i, b := range []key.Binding{k.background, k.foreground, k.markRead, k.copyUser, k.version, k.quit} {
		if i > 0 {
			line += " • "
		}
		line += b.Help().Key + ": " + b.Help().Desc
	}
	return line
}
