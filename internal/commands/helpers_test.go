package commands

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/diogo/llmchat/internal/chat"
	"github.com/diogo/llmchat/internal/config"
	"github.com/diogo/llmchat/internal/render"
)

// fakeTUI records calls instead of starting Bubble Tea
type fakeTUI struct {
	chatCalls   int
	configCalls int
	lastConfig  config.Config
	lastOpts    render.Options
	err         error
}

func (f *fakeTUI) RunChat(controller *chat.Controller, renderOpts render.Options, logger *zap.Logger) error {
	f.chatCalls++
	f.lastOpts = renderOpts
	return f.err
}

func (f *fakeTUI) RunConfig(cfg config.Config) error {
	f.configCalls++
	f.lastConfig = cfg
	return f.err
}

type testEnv struct {
	deps     *Dependencies
	tui      *fakeTUI
	provider *chat.MockProvider
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

// newTestEnv returns dependencies with captured output, a non-terminal
// stdout, default config without a log file, and a mock provider
func newTestEnv(t *testing.T, stdin string) *testEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { render.SetTUITheme(render.DefaultTUITheme) })

	env := &testEnv{
		tui:      &fakeTUI{},
		provider: &chat.MockProvider{Content: "Hi there"},
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
	}
	env.deps = &Dependencies{
		TUI:        env.tui,
		Stdin:      strings.NewReader(stdin),
		Stdout:     env.stdout,
		Stderr:     env.stderr,
		IsTerminal: func() bool { return false },
		LoadConfig: func() (config.Config, error) {
			cfg := config.DefaultConfig()
			cfg.LogFile = ""
			return cfg, nil
		},
		NewProvider: func(config.Config, []string) chat.Provider {
			return env.provider
		},
	}
	return env
}

// run executes the command tree with args
func (e *testEnv) run(args ...string) error {
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)
	return cmd.Execute()
}
