package components

import "github.com/charmbracelet/bubbles/key"

// InputKeyMap defines key bindings shared by the text inputs
// (address bar, card filter)
type InputKeyMap struct {
	Escape key.Binding
	Enter  key.Binding
}

// DefaultInputKeyMap returns the default input key bindings
func DefaultInputKeyMap() InputKeyMap {
	return InputKeyMap{
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept"),
		),
	}
}

// PickerKeyMap defines key bindings for the genre picker
type PickerKeyMap struct {
	Escape key.Binding
	Enter  key.Binding
	Up     key.Binding
	Down   key.Binding
}

// DefaultPickerKeyMap returns the default picker key bindings
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/C-p", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓/C-n", "next"),
		),
	}
}

// Package-level key map instances
var (
	InputKeys  = DefaultInputKeyMap()
	PickerKeys = DefaultPickerKeyMap()
)
