package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// submitMsg is emitted when Enter is pressed on a sendable draft
type submitMsg struct {
	text string
}

const inputPlaceholder = "Type your message..."

// InputArea is the draft editor with its send control.
// Its value mirrors the controller draft: the root model pushes the draft
// in with SetValue and reads edits back with Value.
type InputArea struct {
	textarea textarea.Model
	keys     keyMap
	busy     bool
	width    int
}

// NewInputArea creates a focused input area
func NewInputArea(keys keyMap) InputArea {
	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline = keys.Newline
	ta.Cursor.SetMode(cursor.CursorStatic)
	ta.Focus()

	// Style the textarea
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	return InputArea{
		textarea: ta,
		keys:     keys,
	}
}

// SetWidth sets the outer width of the panel
func (i *InputArea) SetWidth(width int) {
	i.width = width
	inner := width - inputPanelStyle.GetHorizontalFrameSize() - lipgloss.Width(sendStyle.Render("send")) - 1
	if inner < 10 {
		inner = 10
	}
	i.textarea.SetWidth(inner)
}

// SetBusy marks a reply as pending, which disables sending
func (i *InputArea) SetBusy(busy bool) {
	i.busy = busy
}

// SetValue replaces the draft text
func (i *InputArea) SetValue(text string) {
	i.textarea.SetValue(text)
}

// Value returns the draft text
func (i InputArea) Value() string {
	return i.textarea.Value()
}

// CanSend reports whether Enter would submit
func (i InputArea) CanSend() bool {
	return !i.busy && strings.TrimSpace(i.textarea.Value()) != ""
}

// Update handles key input. Only key messages reach the textarea so
// terminal escape sequences never leak into the draft.
func (i InputArea) Update(msg tea.Msg) (InputArea, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return i, nil
	}

	if key.Matches(keyMsg, i.keys.Send) {
		if !i.CanSend() {
			return i, nil
		}
		return i, emit(submitMsg{text: i.textarea.Value()})
	}

	var cmd tea.Cmd
	i.textarea, cmd = i.textarea.Update(keyMsg)
	return i, cmd
}

// View renders the panel with the send control
func (i InputArea) View() string {
	send := sendDisabledStyle.Render("send")
	if i.CanSend() {
		send = sendStyle.Render("send")
	}

	row := lipgloss.JoinHorizontal(lipgloss.Bottom, i.textarea.View(), " ", send)
	if i.width > 0 {
		return inputPanelStyle.Width(i.width - inputPanelStyle.GetHorizontalBorderSize()).Render(row)
	}
	return inputPanelStyle.Render(row)
}
