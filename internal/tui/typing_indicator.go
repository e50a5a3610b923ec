package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/llmchat/internal/models"
)

// typingDots animates three dots in turn
var typingDots = spinner.Spinner{
	Frames: []string{"●○○", "○●○", "○○●", "○●○"},
	FPS:    time.Second / 6,
}

// TypingIndicator is the assistant-shaped row shown while a reply is pending
type TypingIndicator struct {
	spinner spinner.Model
}

// NewTypingIndicator creates a typing indicator
func NewTypingIndicator() TypingIndicator {
	s := spinner.New()
	s.Spinner = typingDots
	s.Style = typingDotsStyle
	return TypingIndicator{spinner: s}
}

// Tick starts the animation
func (t TypingIndicator) Tick() tea.Msg {
	return t.spinner.Tick()
}

// Update advances the animation
func (t TypingIndicator) Update(msg tea.Msg) (TypingIndicator, tea.Cmd) {
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the indicator row
func (t TypingIndicator) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		assistantAvatarStyle.Render(models.RoleAssistant.Avatar()),
		" ",
		t.spinner.View(),
	)
}
