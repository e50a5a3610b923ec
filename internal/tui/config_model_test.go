package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/llmchat/internal/config"
	"github.com/diogo/llmchat/internal/render"
)

func newTestConfigModel(t *testing.T) (ConfigModel, *[]config.Config) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var saved []config.Config
	m := NewConfigModel(config.DefaultConfig())
	m.save = func(cfg config.Config) error {
		saved = append(saved, cfg)
		return nil
	}
	return m, &saved
}

func sendKeys(m ConfigModel, keys ...tea.KeyMsg) ConfigModel {
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(ConfigModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestNewConfigModel(t *testing.T) {
	m, _ := newTestConfigModel(t)

	if m.view != viewMain {
		t.Errorf("Expected view to be viewMain, got %v", m.view)
	}
	if m.cursor != 0 {
		t.Errorf("Expected cursor to be 0, got %d", m.cursor)
	}
	if !strings.HasSuffix(m.configPath, "config.json") {
		t.Errorf("unexpected config path %q", m.configPath)
	}
	if m.feedbackTimeout != 2*time.Second {
		t.Errorf("Expected feedbackTimeout to be 2s, got %v", m.feedbackTimeout)
	}
	if m.Init() != nil {
		t.Error("Init should return nil command")
	}
}

func TestConfigModel_CursorWraps(t *testing.T) {
	m, _ := newTestConfigModel(t)

	m = sendKeys(m, keyUp)
	if m.cursor != menuItemCount-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, menuItemCount-1)
	}

	m = sendKeys(m, keyDown)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestConfigModel_ToggleTimeFormat(t *testing.T) {
	m, saved := newTestConfigModel(t)

	m = sendKeys(m, keyDown, keyDown, keyEnter)

	if m.config.TimeFormat != config.TimeFormat24h {
		t.Errorf("TimeFormat = %q, want 24h", m.config.TimeFormat)
	}
	if len(*saved) != 1 || (*saved)[0].TimeFormat != config.TimeFormat24h {
		t.Errorf("expected the toggled config to be saved, got %+v", *saved)
	}
	if !strings.Contains(m.feedback, "24h") {
		t.Errorf("unexpected feedback %q", m.feedback)
	}
}

func TestConfigModel_ToggleVerbose(t *testing.T) {
	m, _ := newTestConfigModel(t)

	m = sendKeys(m, keyDown, keyDown, keyDown, keyDown, keyEnter)

	if !m.config.Verbose {
		t.Error("Verbose should be enabled")
	}
}

func TestConfigModel_SelectTUITheme(t *testing.T) {
	defer func() {
		render.SetTUITheme(render.DefaultTUITheme)
		UpdateTheme()
	}()
	m, saved := newTestConfigModel(t)

	m = sendKeys(m, keyEnter)
	if m.view != viewTUIThemeSelect {
		t.Fatalf("Expected theme view, got %v", m.view)
	}

	m = sendKeys(m, keyDown, keyEnter)
	want := render.TUIThemeNames()[1]

	if m.view != viewMain {
		t.Error("selection should return to the main view")
	}
	if m.config.TUITheme != want {
		t.Errorf("TUITheme = %q, want %q", m.config.TUITheme, want)
	}
	if render.GetTUITheme().Name != want {
		t.Error("theme should be applied immediately")
	}
	if len(*saved) != 1 {
		t.Errorf("expected one save, got %d", len(*saved))
	}
}

func TestConfigModel_SelectMarkdownStyle(t *testing.T) {
	m, _ := newTestConfigModel(t)

	m = sendKeys(m, keyDown, keyEnter, keyDown, keyEnter)

	if m.config.Markdown.Style != markdownStyles[1] {
		t.Errorf("Style = %q, want %q", m.config.Markdown.Style, markdownStyles[1])
	}
}

func TestConfigModel_EscBacksOutThenQuits(t *testing.T) {
	m, _ := newTestConfigModel(t)
	m = sendKeys(m, keyEnter)

	updated, cmd := m.Update(keyEsc)
	m = updated.(ConfigModel)
	if m.view != viewMain || cmd != nil {
		t.Fatal("esc in a sub-menu should go back")
	}

	_, cmd = m.Update(keyEsc)
	if cmd == nil {
		t.Fatal("esc on the main view should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestConfigModel_SaveError(t *testing.T) {
	m, _ := newTestConfigModel(t)
	m.save = func(config.Config) error { return errors.New("disk full") }

	m = sendKeys(m, keyDown, keyDown, keyEnter)

	if !strings.Contains(m.feedback, "disk full") {
		t.Errorf("feedback should report the error, got %q", m.feedback)
	}
}

func TestConfigModel_FeedbackClears(t *testing.T) {
	m, _ := newTestConfigModel(t)
	m.feedback = "saved"

	updated, _ := m.Update(feedbackClearMsg{})
	if updated.(ConfigModel).feedback != "" {
		t.Error("feedback should be cleared")
	}
}

func TestConfigModel_View(t *testing.T) {
	m, _ := newTestConfigModel(t)

	if !strings.Contains(m.View(), "Initializing") {
		t.Error("view should wait for the window size")
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	view := updated.(ConfigModel).View()

	for _, want := range []string{"Configuration", "config.json", "TUI Theme", "Time Format", "Verbose Logging", "Exit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
