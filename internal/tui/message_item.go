package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/llmchat/internal/models"
	"github.com/diogo/llmchat/internal/render"
)

// renderMessageItem renders one message: avatar, label, time and content.
// The output depends only on its arguments.
func renderMessageItem(msg models.Message, width int, opts render.Options) string {
	avatarStyle := assistantAvatarStyle
	if msg.Role == models.RoleUser {
		avatarStyle = userAvatarStyle
	}
	avatar := avatarStyle.Render(msg.Role.Avatar())
	indent := lipgloss.Width(avatar) + 1

	heading := lipgloss.JoinHorizontal(lipgloss.Top,
		avatar,
		" ",
		messageLabelStyle.Render(msg.Role.Label()),
		"  ",
		messageTimeStyle.Render(msg.Time),
	)

	contentWidth := width - indent
	if contentWidth < 10 {
		contentWidth = 10
	}

	var body string
	switch {
	case msg.Failed:
		body = failedContentStyle.Width(contentWidth).Render(msg.Content)
	case msg.Role == models.RoleAssistant:
		body = render.Reply(msg.Content, opts, contentWidth)
	default:
		body = messageContentStyle.Width(contentWidth).Render(msg.Content)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		heading,
		lipgloss.NewStyle().PaddingLeft(indent).Render(body),
	)
}

// RenderTranscript renders messages one after another, separated by a blank line.
func RenderTranscript(messages []models.Message, width int, opts render.Options) string {
	items := make([]string, len(messages))
	for i, msg := range messages {
		items[i] = renderMessageItem(msg, width, opts)
	}
	return strings.Join(items, "\n\n")
}
