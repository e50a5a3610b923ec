package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/diogo/llmchat/internal/chat"
	"github.com/diogo/llmchat/internal/models"
)

// Line mode commands
const (
	lineClear = "/clear"
	lineSeed  = "/seed"
	lineQuit  = "/quit"
	lineExit  = "/exit"
)

// runLines drives the controller from stdin, one prompt per line, and
// prints every appended message through a controller subscription.
func runLines(ctx context.Context, controller *chat.Controller, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		mu      sync.Mutex
		printed int
		lastID  string
	)
	unsubscribe := controller.Subscribe(func(s chat.State) {
		mu.Lock()
		defer mu.Unlock()
		// Clear and Seed replace the history rather than appending to it
		if printed > 0 && (len(s.Messages) < printed || s.Messages[printed-1].ID != lastID) {
			printed = 0
			fmt.Fprintln(out, "-- conversation cleared --")
		}
		for _, msg := range s.Messages[printed:] {
			writeLineMessage(out, msg)
			lastID = msg.ID
		}
		printed = len(s.Messages)
	})
	defer unsubscribe()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case lineClear:
			controller.Clear()
			continue
		case lineSeed:
			controller.Seed()
			continue
		case lineQuit, lineExit:
			return nil
		}

		reply, ok := controller.Submit(line)
		if !ok {
			continue
		}

		stop := context.AfterFunc(ctx, reply.Cancel)
		content, err := reply.Await()
		stop()
		controller.Resolve(reply, content, err)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return ctx.Err()
}

// writeLineMessage prints one message as "[time] Label: content"
func writeLineMessage(out io.Writer, msg models.Message) {
	label := msg.Role.Label()
	if msg.Failed {
		label += " (error)"
	}
	fmt.Fprintf(out, "[%s] %s: %s\n", msg.Time, label, msg.Content)
}
