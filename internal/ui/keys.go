package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the console key bindings. It implements help.KeyMap.
type keyMap struct {
	Submit   key.Binding
	Complete key.Binding
	Previous key.Binding
	Next     key.Binding
	Cancel   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		Previous: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		Next:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear input")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Complete, k.Previous, k.Next, k.Cancel, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Complete, k.Cancel},
		{k.Previous, k.Next},
		{k.PageUp, k.PageDown, k.Quit},
	}
}
