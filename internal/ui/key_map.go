package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the editor.
type keyMap struct {
	run   key.Binding
	prev  key.Binding
	next  key.Binding
	reset key.Binding
	help  key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		run:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		prev:  key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		next:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		reset: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear input")),
		help:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "commands")),
		quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.run, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.run, k.reset},
		{k.prev, k.next},
		{k.help, k.quit},
	}
}
