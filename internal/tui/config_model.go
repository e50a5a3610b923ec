package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/llmchat/internal/config"
	"github.com/diogo/llmchat/internal/render"
)

// configView represents the current view in the config menu
type configView int

const (
	viewMain           configView = iota
	viewTUIThemeSelect            // TUI color theme
	viewStyleSelect               // Markdown style
)

// Menu item indices for main view
const (
	menuTUITheme = iota
	menuMarkdownStyle
	menuTimeFormat
	menuEmoji
	menuVerbose
	menuExit
	menuItemCount
)

// markdownStyles are the glamour built-in styles offered in the menu
var markdownStyles = []string{"dark", "light", "dracula", "tokyo-night", "pink", "ascii", "notty"}

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel represents the config TUI state
type ConfigModel struct {
	config     config.Config
	configPath string
	save       func(config.Config) error

	// Navigation
	view           configView
	cursor         int
	tuiThemeCursor int
	styleCursor    int

	// Feedback
	feedback        string
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates a config menu for cfg
func NewConfigModel(cfg config.Config) ConfigModel {
	configPath, _ := config.GetConfigPath()

	tuiThemeCursor := indexOf(render.TUIThemeNames(), cfg.TUITheme)
	styleCursor := indexOf(markdownStyles, cfg.Markdown.Style)

	return ConfigModel{
		config:          cfg,
		configPath:      configPath,
		save:            config.SaveConfig,
		view:            viewMain,
		tuiThemeCursor:  tuiThemeCursor,
		styleCursor:     styleCursor,
		feedbackTimeout: 2 * time.Second,
	}
}

func indexOf(items []string, want string) int {
	for i, item := range items {
		if item == want {
			return i
		}
	}
	return 0
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view != viewMain {
				m.view = viewMain
			} else {
				return m, tea.Quit
			}

		case "up", "k":
			m.moveCursor(-1)

		case "down", "j":
			m.moveCursor(1)

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

// moveCursor moves the cursor of the active view, wrapping around
func (m *ConfigModel) moveCursor(delta int) {
	wrap := func(v, n int) int {
		return (v + delta + n) % n
	}
	switch m.view {
	case viewMain:
		m.cursor = wrap(m.cursor, menuItemCount)
	case viewTUIThemeSelect:
		m.tuiThemeCursor = wrap(m.tuiThemeCursor, len(render.TUIThemeNames()))
	case viewStyleSelect:
		m.styleCursor = wrap(m.styleCursor, len(markdownStyles))
	}
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewMain:
		switch m.cursor {
		case menuTUITheme:
			m.view = viewTUIThemeSelect
			return m, nil

		case menuMarkdownStyle:
			m.view = viewStyleSelect
			return m, nil

		case menuTimeFormat:
			if m.config.TimeFormat == config.TimeFormat24h {
				m.config.TimeFormat = config.TimeFormat12h
			} else {
				m.config.TimeFormat = config.TimeFormat24h
			}
			return m.persist(fmt.Sprintf("Time format set to %s", m.config.TimeFormat))

		case menuEmoji:
			m.config.Markdown.EnableEmoji = !m.config.Markdown.EnableEmoji
			return m.persist(fmt.Sprintf("Emoji %s", enabledWord(m.config.Markdown.EnableEmoji)))

		case menuVerbose:
			m.config.Verbose = !m.config.Verbose
			return m.persist(fmt.Sprintf("Verbose logging %s", enabledWord(m.config.Verbose)))

		case menuExit:
			return m, tea.Quit
		}

	case viewTUIThemeSelect:
		selected := render.TUIThemeNames()[m.tuiThemeCursor]
		m.config.TUITheme = selected

		// Apply the new TUI theme immediately
		render.SetTUITheme(selected)
		UpdateTheme()

		m.view = viewMain
		return m.persist(fmt.Sprintf("TUI theme set to %s", selected))

	case viewStyleSelect:
		m.config.Markdown.Style = markdownStyles[m.styleCursor]
		m.view = viewMain
		return m.persist(fmt.Sprintf("Markdown style set to %s", m.config.Markdown.Style))
	}

	return m, nil
}

// persist saves the config and reports the outcome
func (m ConfigModel) persist(success string) (tea.Model, tea.Cmd) {
	if err := m.save(m.config); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
	} else {
		m.feedback = success
	}
	return m, clearFeedback(m.feedbackTimeout)
}

func enabledWord(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	sections := []string{
		configHeaderStyle.Width(contentWidth).Render(configTitleStyle.Render("✦ Configuration")),
	}

	pathsContent := lipgloss.JoinVertical(lipgloss.Left,
		configSectionTitleStyle.Render("Paths"),
		fmt.Sprintf("   Config:  %s", configPathStyle.Render(m.configPath)),
		fmt.Sprintf("   Log:     %s", configPathStyle.Render(m.config.LogFile)),
	)
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(pathsContent))

	var settingsContent string
	switch m.view {
	case viewMain:
		settingsContent = m.renderMainMenu()
	case viewTUIThemeSelect:
		settingsContent = m.renderTUIThemeSelect()
	case viewStyleSelect:
		settingsContent = m.renderStyleSelect()
	}
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(settingsContent))

	if m.feedback != "" {
		sections = append(sections, configFeedbackStyle.Render("✓ "+m.feedback))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// menuLine renders one row with the cursor marker
func menuLine(selected bool, label, value string) string {
	cursor := "  "
	style := configMenuItemStyle
	if selected {
		cursor = configCursorStyle.Render("▸ ")
		style = configMenuSelectedStyle
	}
	if value == "" {
		return cursor + style.Render(label)
	}
	return cursor + style.Render(fmt.Sprintf("%-18s", label)) + value
}

// renderMainMenu renders the main settings menu
func (m ConfigModel) renderMainMenu() string {
	rows := []string{
		configSectionTitleStyle.Render("Settings"),
		"",
		menuLine(m.cursor == menuTUITheme, "TUI Theme", configValueStyle.Render(m.config.TUITheme)),
		menuLine(m.cursor == menuMarkdownStyle, "Markdown Style", configValueStyle.Render(m.config.Markdown.Style)),
		menuLine(m.cursor == menuTimeFormat, "Time Format", configValueStyle.Render(m.config.TimeFormat)),
		menuLine(m.cursor == menuEmoji, "Emoji", m.renderBoolValue(m.config.Markdown.EnableEmoji)),
		menuLine(m.cursor == menuVerbose, "Verbose Logging", m.renderBoolValue(m.config.Verbose)),
		"",
		menuLine(m.cursor == menuExit, "Exit", ""),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderTUIThemeSelect renders the TUI color theme selection sub-menu
func (m ConfigModel) renderTUIThemeSelect() string {
	rows := []string{configSectionTitleStyle.Render("Select TUI Theme"), ""}

	for i, theme := range render.AvailableTUIThemes() {
		current := ""
		if theme.Name == m.config.TUITheme {
			current = configStatusOkStyle.Render(" (current)")
		}
		rows = append(rows, menuLine(m.tuiThemeCursor == i, fmt.Sprintf("%s - %s", theme.Name, theme.Description), "")+current)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderStyleSelect renders the markdown style selection sub-menu
func (m ConfigModel) renderStyleSelect() string {
	rows := []string{configSectionTitleStyle.Render("Select Markdown Style"), ""}

	for i, style := range markdownStyles {
		current := ""
		if style == m.config.Markdown.Style {
			current = configStatusOkStyle.Render(" (current)")
		}
		rows = append(rows, menuLine(m.styleCursor == i, style, "")+current)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderBoolValue renders a boolean value with appropriate styling
func (m ConfigModel) renderBoolValue(value bool) string {
	if value {
		return configEnabledStyle.Render("enabled")
	}
	return configDisabledStyle.Render("disabled")
}

// renderStatusBar renders the bottom status bar
func (m ConfigModel) renderStatusBar(width int) string {
	back := "Exit"
	if m.view != viewMain {
		back = "Back"
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"↑↓", "Navigate"},
		{"Enter", "Select"},
		{"Esc", back},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return configStatusBarStyle.Width(width).Render(strings.Join(items, "  │  "))
}

// RunConfig starts the config TUI
func RunConfig(cfg config.Config) error {
	m := NewConfigModel(cfg)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
