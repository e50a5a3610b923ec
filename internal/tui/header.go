package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/llmchat/internal/models"
)

// clearRequestedMsg is emitted when the user activates the clear control
type clearRequestedMsg struct{}

// Header renders the brand, the status and the clear and settings controls.
type Header struct {
	keys  keyMap
	width int
}

// NewHeader creates a header bound to keys
func NewHeader(keys keyMap) Header {
	return Header{keys: keys}
}

// SetWidth sets the rendered width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// Update reports a clear request. The settings control has no binding.
func (h Header) Update(msg tea.Msg) (Header, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, h.keys.Clear) {
		return h, emit(clearRequestedMsg{})
	}
	return h, nil
}

// View renders the header
func (h Header) View() string {
	left := lipgloss.JoinHorizontal(lipgloss.Center,
		brandStyle.Render(models.ProductName),
		headerSeparatorStyle.Render("  "),
		statusDotStyle.Render("●"),
		statusTextStyle.Render(" "+models.StatusReady),
	)
	right := lipgloss.JoinHorizontal(lipgloss.Center,
		controlStyle.Render("clear"),
		headerSeparatorStyle.Render(" ^L  │  "),
		controlInertStyle.Render("settings"),
	)

	inner := h.width - headerStyle.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, left, lipgloss.NewStyle().Width(gap).Render(""), right)

	if h.width > 0 {
		return headerStyle.Width(h.width - headerStyle.GetHorizontalBorderSize()).Render(row)
	}
	return headerStyle.Render(row)
}
