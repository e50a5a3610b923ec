package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the chat key bindings
type keyMap struct {
	Send           key.Binding
	Newline        key.Binding
	Clear          key.Binding
	Copy           key.Binding
	Seed           key.Binding
	NextSuggestion key.Binding
	PrevSuggestion key.Binding
	Quit           key.Binding
}

// Terminals cannot report shift+enter, so a newline is alt+enter or ctrl+j.
func defaultKeyMap() keyMap {
	return keyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "Send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("Alt+Enter", "Newline"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+L", "Clear"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("Ctrl+Y", "Copy reply"),
		),
		Seed: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("Ctrl+O", "Demo"),
		),
		NextSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "Suggestions"),
		),
		PrevSuggestion: key.NewBinding(
			key.WithKeys("shift+tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("Esc", "Quit"),
		),
	}
}

// emit wraps a message in a command so leaf components can report events
// to the root model.
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
