// Package tui provides the terminal user interface for llmchat.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/llmchat/internal/errors"
	"github.com/diogo/llmchat/internal/render"
)

// Color variables (updated from theme)
var (
	// Base colors
	colorSurface lipgloss.Color
	colorBorder  lipgloss.Color

	// Accent colors
	colorPrimary lipgloss.Color
	colorAccent  lipgloss.Color
	colorError   lipgloss.Color

	// Text colors
	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color

	// Avatar badges
	colorUserAvatar      lipgloss.Color
	colorAssistantAvatar lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	// Header
	headerStyle          lipgloss.Style
	brandStyle           lipgloss.Style
	statusDotStyle       lipgloss.Style
	statusTextStyle      lipgloss.Style
	controlStyle         lipgloss.Style
	controlInertStyle    lipgloss.Style
	headerSeparatorStyle lipgloss.Style

	// Messages area panel
	messagesAreaStyle lipgloss.Style

	// Message items
	userAvatarStyle      lipgloss.Style
	assistantAvatarStyle lipgloss.Style
	messageLabelStyle    lipgloss.Style
	messageTimeStyle     lipgloss.Style
	messageContentStyle  lipgloss.Style
	failedContentStyle   lipgloss.Style

	// Typing indicator
	typingDotsStyle lipgloss.Style

	// Empty state
	emptyIconStyle          lipgloss.Style
	emptyTitleStyle         lipgloss.Style
	suggestionStyle         lipgloss.Style
	suggestionSelectedStyle lipgloss.Style

	// Input area panel
	inputPanelStyle   lipgloss.Style
	sendStyle         lipgloss.Style
	sendDisabledStyle lipgloss.Style

	// Loading style
	loadingStyle lipgloss.Style

	// Status bar styles
	statusBarStyle    lipgloss.Style
	statusKeyStyle    lipgloss.Style
	statusDescStyle   lipgloss.Style
	statusNoticeStyle lipgloss.Style

	// Error style
	errorStyle lipgloss.Style

	// Config menu styles
	configHeaderStyle       lipgloss.Style
	configTitleStyle        lipgloss.Style
	configPanelStyle        lipgloss.Style
	configSectionTitleStyle lipgloss.Style
	configMenuItemStyle     lipgloss.Style
	configMenuSelectedStyle lipgloss.Style
	configCursorStyle       lipgloss.Style
	configValueStyle        lipgloss.Style
	configEnabledStyle      lipgloss.Style
	configDisabledStyle     lipgloss.Style
	configPathStyle         lipgloss.Style
	configStatusOkStyle     lipgloss.Style
	configFeedbackStyle     lipgloss.Style
	configStatusBarStyle    lipgloss.Style
)

// init loads the default theme on package initialization
func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorAccent = theme.Accent
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute
	colorUserAvatar = theme.UserAvatar
	colorAssistantAvatar = theme.AssistantAvatar

	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(colorBorder).
		Padding(0, 1)

	brandStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	statusDotStyle = lipgloss.NewStyle().
		Foreground(colorPrimary)

	statusTextStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	controlStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	controlInertStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	headerSeparatorStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	messagesAreaStyle = lipgloss.NewStyle().
		Padding(1, 2)

	userAvatarStyle = lipgloss.NewStyle().
		Foreground(colorSurface).
		Background(colorUserAvatar).
		Bold(true).
		Padding(0, 1)

	assistantAvatarStyle = lipgloss.NewStyle().
		Foreground(colorSurface).
		Background(colorAssistantAvatar).
		Bold(true).
		Padding(0, 1)

	messageLabelStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	messageTimeStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	messageContentStyle = lipgloss.NewStyle().
		Foreground(colorText)

	failedContentStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Italic(true)

	typingDotsStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	emptyIconStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		MarginBottom(1)

	emptyTitleStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true).
		MarginBottom(1)

	suggestionStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	suggestionSelectedStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(0, 1)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	sendStyle = lipgloss.NewStyle().
		Foreground(colorSurface).
		Background(colorPrimary).
		Bold(true).
		Padding(0, 1)

	sendDisabledStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Background(colorSurface).
		Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusNoticeStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	configHeaderStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		MarginBottom(1).
		Align(lipgloss.Center)

	configTitleStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true).
		PaddingLeft(1)

	configPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 2)

	configSectionTitleStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	configMenuItemStyle = lipgloss.NewStyle().
		Foreground(colorText)

	configMenuSelectedStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	configCursorStyle = lipgloss.NewStyle().
		Foreground(colorPrimary)

	configValueStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	configEnabledStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9ece6a")) // Green

	configDisabledStyle = lipgloss.NewStyle().
		Foreground(colorError)

	configPathStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	configStatusOkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9ece6a"))

	configFeedbackStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true).
		MarginTop(1)

	configStatusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		MarginTop(1).
		Align(lipgloss.Center)
}

// FormatError returns a styled error message with a hint for known error kinds.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", err)))

	if path := errors.GetParsePath(err); path != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  At: %s", path)))
	}

	switch errors.Classify(err) {
	case errors.KindMalformed:
		sb.WriteString(dimStyle.Render("\n  Hint: the responses file must look like {\"responses\": [\"...\"]}"))
	case errors.KindNetwork:
		sb.WriteString(dimStyle.Render("\n  Hint: Check your internet connection and try again"))
	case errors.KindTimeout:
		sb.WriteString(dimStyle.Render("\n  Hint: Raise reply_timeout_ms in the config file"))
	}

	return sb.String()
}
