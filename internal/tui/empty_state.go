package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/llmchat/internal/models"
)

// suggestionSelectedMsg is emitted when a suggestion is picked
type suggestionSelectedMsg struct {
	text string
}

const emptyTitle = "Start a conversation with the AI"

// EmptyState is shown while the conversation has no messages.
// Tab and Shift+Tab move a highlight over the suggestions.
type EmptyState struct {
	suggestions []string
	cursor      int // -1 when nothing is highlighted
	keys        keyMap
}

// NewEmptyState creates an empty state with the built-in suggestions
func NewEmptyState(keys keyMap) EmptyState {
	return EmptyState{
		suggestions: models.Suggestions(),
		cursor:      -1,
		keys:        keys,
	}
}

// Highlighted returns the highlighted suggestion, if any
func (e EmptyState) Highlighted() (string, bool) {
	if e.cursor < 0 || e.cursor >= len(e.suggestions) {
		return "", false
	}
	return e.suggestions[e.cursor], true
}

// Reset removes the highlight
func (e *EmptyState) Reset() {
	e.cursor = -1
}

// Update moves the highlight and reports a selection on Enter
func (e EmptyState) Update(msg tea.Msg) (EmptyState, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(e.suggestions) == 0 {
		return e, nil
	}

	switch {
	case key.Matches(keyMsg, e.keys.NextSuggestion):
		e.cursor = (e.cursor + 1) % len(e.suggestions)
	case key.Matches(keyMsg, e.keys.PrevSuggestion):
		if e.cursor <= 0 {
			e.cursor = len(e.suggestions) - 1
		} else {
			e.cursor--
		}
	case key.Matches(keyMsg, e.keys.Send):
		if text, ok := e.Highlighted(); ok {
			e.cursor = -1
			return e, emit(suggestionSelectedMsg{text: text})
		}
	}
	return e, nil
}

// View renders the empty state centered in width x height
func (e EmptyState) View(width, height int) string {
	lines := []string{
		emptyIconStyle.Render("✦"),
		emptyTitleStyle.Render(emptyTitle),
	}
	for i, s := range e.suggestions {
		style := suggestionStyle
		if i == e.cursor {
			style = suggestionSelectedStyle
		}
		lines = append(lines, style.Render(s))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)

	if width <= 0 || height <= 0 {
		return content
	}
	if lipgloss.Height(content) > height {
		// Not enough room to center; show what fits from the top
		return strings.Join(strings.Split(content, "\n")[:height], "\n")
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
