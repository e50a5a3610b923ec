package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/llmchat/internal/chat"
	"github.com/diogo/llmchat/internal/render"
)

// Message types for the TUI
type (
	// replyMsg carries the provider result of a pending reply
	replyMsg struct {
		reply   *chat.Reply
		content string
		err     error
	}
	// scrollMsg moves the list to its end once the frame is laid out
	scrollMsg struct{}
	copiedMsg struct {
		err error
	}
	noticeClearMsg struct {
		seq int
	}
)

const (
	scrollDelay    = 100 * time.Millisecond
	noticeDuration = 2 * time.Second
)

var errNothingToCopy = errors.New("no assistant reply to copy yet")

// Model is the root chat model. It hosts the conversation controller,
// routes leaf events to it and re-renders from the state it publishes.
type Model struct {
	controller *chat.Controller
	logger     *zap.Logger
	keys       keyMap

	// UI components
	header Header
	list   MessageList
	input  InputArea

	// State
	state           chat.State
	scrollRequested bool
	unsubscribe     func()
	writeClipboard  func(string) error
	notice          string
	noticeSeq       int
	ready           bool

	// Dimensions
	width  int
	height int
}

// NewModel creates a chat model bound to controller
func NewModel(controller *chat.Controller, renderOpts render.Options, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := defaultKeyMap()

	m := &Model{
		controller:     controller,
		logger:         logger,
		keys:           keys,
		header:         NewHeader(keys),
		list:           NewMessageList(keys, renderOpts),
		input:          NewInputArea(keys),
		writeClipboard: clipboard.WriteAll,
	}
	m.unsubscribe = controller.Subscribe(m.applyState)
	controller.SetScrollAnchor(m.requestScroll)
	m.applyState(controller.State())
	return m
}

// Close detaches the model from the controller and abandons a pending reply
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.controller.SetScrollAnchor(nil)
	if reply := m.controller.Pending(); reply != nil {
		reply.Cancel()
	}
}

// applyState receives every snapshot published by the controller
func (m *Model) applyState(s chat.State) {
	m.state = s
	m.list.SetMessages(s.Messages, s.Typing)
	if m.input.Value() != s.Draft {
		m.input.SetValue(s.Draft)
	}
	m.input.SetBusy(s.Typing)
}

func (m *Model) requestScroll() {
	m.scrollRequested = true
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case submitMsg:
		if reply, ok := m.controller.Submit(msg.text); ok {
			cmds = append(cmds, awaitReply(reply), m.list.typing.Tick)
		}

	case replyMsg:
		m.controller.Resolve(msg.reply, msg.content, msg.err)

	case clearRequestedMsg:
		m.controller.Clear()
		m.list.empty.Reset()

	case suggestionSelectedMsg:
		m.controller.SelectSuggestion(msg.text)

	case scrollMsg:
		m.list.ScrollToEnd()

	case copiedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, errNothingToCopy) {
				m.logger.Warn("copy to clipboard failed", zap.Error(msg.err))
			}
			cmds = append(cmds, m.showNotice(fmt.Sprintf("Copy failed: %v", msg.err)))
		} else {
			cmds = append(cmds, m.showNotice("Copied last reply to clipboard"))
		}

	case noticeClearMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}

	case spinner.TickMsg:
		m.list, cmd = m.list.UpdateTyping(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.scrollRequested {
		m.scrollRequested = false
		cmds = append(cmds, scrollAfterLayout())
	}

	return m, tea.Batch(cmds...)
}

// handleKey routes a key to the component that owns it
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Copy):
		return m.copyLastReply()
	case key.Matches(msg, m.keys.Clear):
		m.header, cmd = m.header.Update(msg)
		return cmd
	case key.Matches(msg, m.keys.Seed):
		m.controller.Seed()
		m.list.empty.Reset()
		return nil
	}

	if m.list.IsEmpty() && m.suggestionKey(msg) {
		m.list.empty, cmd = m.list.empty.Update(msg)
		return cmd
	}

	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != m.state.Draft {
		m.controller.SetDraft(value)
	}
	return cmd
}

// suggestionKey reports whether the empty state should take msg.
// Enter only picks a suggestion when the draft is blank.
func (m *Model) suggestionKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.NextSuggestion, m.keys.PrevSuggestion):
		return true
	case key.Matches(msg, m.keys.Send):
		_, highlighted := m.list.empty.Highlighted()
		return highlighted && strings.TrimSpace(m.input.Value()) == ""
	}
	return false
}

// layout sizes components to the window
func (m *Model) layout() {
	m.header.SetWidth(m.width)
	m.input.SetWidth(m.width)

	headerHeight := lipgloss.Height(m.header.View())
	inputHeight := lipgloss.Height(m.input.View())
	statusHeight := 1

	listHeight := m.height - headerHeight - inputHeight - statusHeight - messagesAreaStyle.GetVerticalFrameSize()
	if listHeight < 3 {
		listHeight = 3
	}
	listWidth := m.width - messagesAreaStyle.GetHorizontalFrameSize()
	if listWidth < 20 {
		listWidth = 20
	}
	m.list.SetSize(listWidth, listHeight)
}

// View renders the TUI
func (m *Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	messages := messagesAreaStyle.
		Width(m.width).
		Height(m.list.height + messagesAreaStyle.GetVerticalPadding()).
		Render(m.list.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		messages,
		m.input.View(),
		m.renderStatusBar(),
	)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m *Model) renderStatusBar() string {
	if m.notice != "" {
		return statusNoticeStyle.Render(" " + m.notice)
	}

	bindings := []key.Binding{m.keys.Send, m.keys.Newline}
	if m.list.IsEmpty() {
		bindings = append(bindings, m.keys.NextSuggestion, m.keys.Seed)
	}
	bindings = append(bindings, m.keys.Clear, m.keys.Copy, m.keys.Quit)

	var items []string
	for _, b := range bindings {
		help := b.Help()
		items = append(items, statusKeyStyle.Render(help.Key)+statusDescStyle.Render(" "+help.Desc))
	}

	return statusBarStyle.Render(" " + strings.Join(items, "  │  "))
}

// showNotice displays text in the status bar for a short while
func (m *Model) showNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeClearMsg{seq: seq}
	})
}

// copyLastReply copies the newest assistant reply to the clipboard
func (m *Model) copyLastReply() tea.Cmd {
	text := m.controller.LastReply()
	write := m.writeClipboard
	return func() tea.Msg {
		if text == "" {
			return copiedMsg{err: errNothingToCopy}
		}
		return copiedMsg{err: write(text)}
	}
}

// awaitReply waits for the provider off the event loop
func awaitReply(reply *chat.Reply) tea.Cmd {
	return func() tea.Msg {
		content, err := reply.Await()
		return replyMsg{reply: reply, content: content, err: err}
	}
}

// scrollAfterLayout defers the scroll until the new content is rendered
func scrollAfterLayout() tea.Cmd {
	return tea.Tick(scrollDelay, func(time.Time) tea.Msg {
		return scrollMsg{}
	})
}

// RunChat starts the chat TUI
func RunChat(controller *chat.Controller, renderOpts render.Options, logger *zap.Logger) error {
	m := NewModel(controller, renderOpts, logger)
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
