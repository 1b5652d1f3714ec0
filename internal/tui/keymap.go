package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the supervisor's key bindings.
type keyMap struct {
	Proceed      key.Binding // start trigger / exit confirmation
	Sickness     key.Binding
	CompleteTask key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Proceed: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start / confirm"),
		),
		Sickness: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sickness report"),
		),
		CompleteTask: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "signal task complete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit (teardown)"),
		),
	}
}
