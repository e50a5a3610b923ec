package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/llmchat/internal/render"
	"github.com/diogo/llmchat/internal/tui"
)

// NewChatCmd creates the chat command
func NewChatCmd(deps *Dependencies, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session.

In a terminal this opens the full-screen chat. When stdout is not a
terminal, prompts are read line by line from stdin and the transcript
is printed; type /clear to start over or /seed for a sample exchange.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, deps.withDefaults(), flags)
		},
	}
}

func runChat(cmd *cobra.Command, deps *Dependencies, flags *rootFlags) error {
	cfg, err := resolveConfig(cmd, deps, flags)
	if err != nil {
		return err
	}

	s, err := newSession(cfg, deps)
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s.watchResponses(ctx)

	if !deps.IsTerminal() {
		return runLines(ctx, s.controller, deps.Stdin, deps.Stdout)
	}

	render.SetTUITheme(cfg.TUITheme)
	tui.UpdateTheme()

	if err := deps.TUI.RunChat(s.controller, render.OptionsFromConfig(cfg), s.logger); err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}
	return nil
}
