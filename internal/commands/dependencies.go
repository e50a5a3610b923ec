package commands

import (
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/diogo/llmchat/internal/chat"
	"github.com/diogo/llmchat/internal/config"
	"github.com/diogo/llmchat/internal/render"
	"github.com/diogo/llmchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(controller *chat.Controller, renderOpts render.Options, logger *zap.Logger) error
	RunConfig(cfg config.Config) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// TUI is the terminal user interface.
	TUI TUIInterface

	// Stdin, Stdout and Stderr are the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// IsTerminal reports whether stdout is an interactive terminal.
	IsTerminal func() bool

	// LoadConfig reads the user configuration.
	LoadConfig func() (config.Config, error)

	// NewProvider overrides the reply source. Nil uses the canned provider.
	NewProvider func(cfg config.Config, responses []string) chat.Provider
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(controller *chat.Controller, renderOpts render.Options, logger *zap.Logger) error {
	return tui.RunChat(controller, renderOpts, logger)
}

func (d *DefaultTUI) RunConfig(cfg config.Config) error {
	return tui.RunConfig(cfg)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:        &DefaultTUI{},
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		IsTerminal: isStdoutTTY,
		LoadConfig: config.LoadConfig,
	}
}

// withDefaults fills unset fields so tests only provide what they need
func (d *Dependencies) withDefaults() *Dependencies {
	if d == nil {
		return NewDependencies()
	}
	out := *d
	defaults := NewDependencies()
	if out.TUI == nil {
		out.TUI = defaults.TUI
	}
	if out.Stdin == nil {
		out.Stdin = defaults.Stdin
	}
	if out.Stdout == nil {
		out.Stdout = defaults.Stdout
	}
	if out.Stderr == nil {
		out.Stderr = defaults.Stderr
	}
	if out.IsTerminal == nil {
		out.IsTerminal = defaults.IsTerminal
	}
	if out.LoadConfig == nil {
		out.LoadConfig = defaults.LoadConfig
	}
	return &out
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}
