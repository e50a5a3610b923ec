package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/llmchat/internal/render"
	"github.com/diogo/llmchat/internal/tui"
)

// spinner animates "Assistant is typing" on stderr while a one-shot reply
// is pending
type spinner struct {
	out     io.Writer
	message string
	theme   render.TUITheme
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		theme:   render.GetTUITheme(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(160 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	lit := lipgloss.NewStyle().Foreground(s.theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(s.theme.TextMute)

	var dots strings.Builder
	active := s.frame % 3
	for i := 0; i < 3; i++ {
		if i == active {
			dots.WriteString(lit.Render("●"))
		} else {
			dots.WriteString(dim.Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(s.theme.TextDim).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s", dots.String(), msg)
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// halt stops the spinner and waits for the line to be cleared
func (s *spinner) halt() {
	s.stopOnce()
	<-s.done
}

// runQuery sends a single prompt and prints the reply
func runQuery(cmd *cobra.Command, deps *Dependencies, flags *rootFlags, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty")
	}

	cfg, err := resolveConfig(cmd, deps, flags)
	if err != nil {
		return err
	}
	render.SetTUITheme(cfg.TUITheme)

	s, err := newSession(cfg, deps)
	if err != nil {
		return err
	}
	defer s.close()

	reply, ok := s.controller.Submit(prompt)
	if !ok {
		return fmt.Errorf("prompt was not accepted")
	}

	decorated := deps.IsTerminal()
	var spin *spinner
	if decorated {
		spin = newSpinner(deps.Stderr, "Assistant is typing")
		spin.start()
	}

	if ctx := cmd.Context(); ctx != nil {
		stop := context.AfterFunc(ctx, reply.Cancel)
		defer stop()
	}

	startTime := time.Now()
	content, replyErr := reply.Await()
	s.controller.Resolve(reply, content, replyErr)
	if spin != nil {
		spin.halt()
	}
	s.logger.Debug("one-shot reply finished", zap.Duration("took", time.Since(startTime)))

	if replyErr != nil {
		return fmt.Errorf("generation failed: %w", replyErr)
	}

	text := s.controller.LastReply()

	if flags.output != "" {
		if err := os.WriteFile(flags.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if decorated {
			ok := lipgloss.NewStyle().Foreground(render.GetTUITheme().Primary).Render(
				fmt.Sprintf("✓ Reply saved to %s", flags.output),
			)
			fmt.Fprintln(deps.Stderr, ok)
		}
		return nil
	}

	// Raw output when piped
	if !decorated {
		fmt.Fprintln(deps.Stdout, text)
		return nil
	}

	width := getTerminalWidth() - 4
	if width < 40 {
		width = 40
	}
	if width > 120 {
		width = 120
	}
	state := s.controller.State()
	fmt.Fprintln(deps.Stdout, tui.RenderTranscript(state.Messages[len(state.Messages)-1:], width, render.OptionsFromConfig(cfg)))
	return nil
}
