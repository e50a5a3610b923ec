package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/llmchat/internal/models"
	"github.com/diogo/llmchat/internal/render"
)

// MessageList shows the empty state, or the messages followed by the
// typing indicator inside a scrollable viewport. The end of the viewport
// is the scroll anchor.
type MessageList struct {
	viewport viewport.Model
	empty    EmptyState
	typing   TypingIndicator

	messages   []models.Message
	isTyping   bool
	renderOpts render.Options

	// rendered items keyed by message ID and width
	cache map[string]string

	width  int
	height int
}

// NewMessageList creates an empty message list
func NewMessageList(keys keyMap, opts render.Options) MessageList {
	return MessageList{
		viewport:   viewport.New(0, 0),
		empty:      NewEmptyState(keys),
		typing:     NewTypingIndicator(),
		renderOpts: opts,
		cache:      make(map[string]string),
	}
}

// SetSize resizes the list
func (l *MessageList) SetSize(width, height int) {
	if width == l.width && height == l.height {
		return
	}
	l.width = width
	l.height = height
	l.viewport.Width = width
	l.viewport.Height = height
	l.refresh()
}

// SetMessages replaces the messages and the typing flag
func (l *MessageList) SetMessages(messages []models.Message, typing bool) {
	l.messages = messages
	l.isTyping = typing
	l.prune()
	l.refresh()
}

// IsEmpty reports whether the empty state is showing
func (l MessageList) IsEmpty() bool {
	return len(l.messages) == 0
}

// ScrollToEnd brings the newest message into view
func (l *MessageList) ScrollToEnd() {
	l.viewport.GotoBottom()
}

// AtEnd reports whether the viewport is scrolled to the bottom
func (l MessageList) AtEnd() bool {
	return l.viewport.AtBottom()
}

// Update scrolls the viewport and animates the typing indicator
func (l MessageList) Update(msg tea.Msg) (MessageList, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if _, ok := msg.(tea.KeyMsg); !ok {
		// Keys belong to the input area; the viewport scrolls with the mouse
		l.viewport, cmd = l.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return l, tea.Batch(cmds...)
}

// UpdateTyping advances the typing indicator while a reply is pending
func (l MessageList) UpdateTyping(msg tea.Msg) (MessageList, tea.Cmd) {
	if !l.isTyping {
		return l, nil
	}
	var cmd tea.Cmd
	l.typing, cmd = l.typing.Update(msg)
	atEnd := l.viewport.AtBottom()
	l.refresh()
	if atEnd {
		l.viewport.GotoBottom()
	}
	return l, cmd
}

// View renders the list
func (l MessageList) View() string {
	if l.IsEmpty() {
		return l.empty.View(l.width, l.height)
	}
	return l.viewport.View()
}

// refresh rebuilds the viewport content from cached items
func (l *MessageList) refresh() {
	if l.width <= 0 {
		return
	}

	var content strings.Builder
	for i, msg := range l.messages {
		if i > 0 {
			content.WriteString("\n\n")
		}
		content.WriteString(l.item(msg))
	}
	if l.isTyping && len(l.messages) > 0 {
		content.WriteString("\n\n")
		content.WriteString(l.typing.View())
	}

	l.viewport.SetContent(content.String())
}

func (l *MessageList) item(msg models.Message) string {
	key := cacheKeyFor(msg.ID, l.width)
	if rendered, ok := l.cache[key]; ok {
		return rendered
	}
	rendered := renderMessageItem(msg, l.width, l.renderOpts)
	l.cache[key] = rendered
	return rendered
}

// prune drops cached items for messages no longer in the list
func (l *MessageList) prune() {
	if len(l.cache) == 0 {
		return
	}
	live := make(map[string]struct{}, len(l.messages))
	for _, msg := range l.messages {
		live[cacheKeyFor(msg.ID, l.width)] = struct{}{}
	}
	for key := range l.cache {
		if _, ok := live[key]; !ok {
			delete(l.cache, key)
		}
	}
}

func cacheKeyFor(id string, width int) string {
	return fmt.Sprintf("%s:%d", id, width)
}
