package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Dismiss    key.Binding
	Accept     key.Binding
	AcceptAlt  key.Binding
	Regenerate key.Binding
	Save       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Dismiss:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close suggestion")),
		Accept:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept suggestion")),
		AcceptAlt:  key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "accept suggestion")),
		Regenerate: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "regenerate")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Accept, k.Regenerate, k.Save, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Dismiss},
		{k.Accept, k.AcceptAlt, k.Regenerate},
		{k.Save, k.Quit},
	}
}
