package commands

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/diogo/llmchat/internal/chat"
	apierrors "github.com/diogo/llmchat/internal/errors"
)

var lineTime = time.Date(2026, 3, 14, 9, 5, 0, 0, time.Local)

func newLineController(p chat.Provider) *chat.Controller {
	return chat.NewController(p, chat.WithClock(func() time.Time { return lineTime }))
}

func TestRunLines_Transcript(t *testing.T) {
	c := newLineController(&chat.MockProvider{Content: "Hello!"})
	var out bytes.Buffer

	if err := runLines(context.Background(), c, strings.NewReader("hi\n"), &out); err != nil {
		t.Fatalf("runLines failed: %v", err)
	}

	want := "[09:05 AM] You: hi\n[09:05 AM] Assistant: Hello!\n"
	if out.String() != want {
		t.Errorf("transcript = %q, want %q", out.String(), want)
	}
}

func TestRunLines_Commands(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCalls int
		contains  []string
		excludes  []string
	}{
		{
			name:      "blank lines are skipped",
			input:     "\n   \none\n\t\n",
			wantCalls: 1,
			contains:  []string{"You: one"},
		},
		{
			name:      "clear",
			input:     "one\n/clear\ntwo\n",
			wantCalls: 2,
			contains:  []string{"You: one", "-- conversation cleared --", "You: two"},
		},
		{
			name:      "quit stops reading",
			input:     "one\n/quit\ntwo\n",
			wantCalls: 1,
			excludes:  []string{"You: two"},
		},
		{
			name:      "exit stops reading",
			input:     " /exit \nnever\n",
			wantCalls: 0,
			excludes:  []string{"never"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &chat.MockProvider{Content: "ok"}
			c := newLineController(p)
			var out bytes.Buffer

			if err := runLines(context.Background(), c, strings.NewReader(tt.input), &out); err != nil {
				t.Fatalf("runLines failed: %v", err)
			}

			if p.Calls() != tt.wantCalls {
				t.Errorf("provider calls = %d, want %d", p.Calls(), tt.wantCalls)
			}
			for _, s := range tt.contains {
				if !strings.Contains(out.String(), s) {
					t.Errorf("output missing %q:\n%s", s, out.String())
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(out.String(), s) {
					t.Errorf("output should not contain %q:\n%s", s, out.String())
				}
			}
		})
	}
}

func TestRunLines_FailedReplyIsLabelled(t *testing.T) {
	p := &chat.MockProvider{Err: apierrors.NewNetworkError("complete", errors.New("refused"))}
	c := newLineController(p)
	var out bytes.Buffer

	if err := runLines(context.Background(), c, strings.NewReader("hi\n"), &out); err != nil {
		t.Fatalf("runLines failed: %v", err)
	}

	if !strings.Contains(out.String(), "Assistant (error): ") {
		t.Errorf("failed reply should be labelled:\n%s", out.String())
	}
}

func TestRunLines_CancelledContext(t *testing.T) {
	p := &chat.MockProvider{Content: "ok"}
	c := newLineController(p)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runLines(ctx, c, strings.NewReader("hi\n"), &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if p.Calls() != 0 {
		t.Error("no prompt should be sent after cancellation")
	}
}

func TestRunLines_CancelAbortsPendingReply(t *testing.T) {
	p := &chat.MockProvider{Block: true}
	c := newLineController(p)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- runLines(ctx, c, strings.NewReader("hi\n"), &bytes.Buffer{})
	}()

	deadline := time.After(2 * time.Second)
	for c.Pending() == nil {
		select {
		case <-deadline:
			t.Fatal("reply never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runLines did not return after cancel")
	}

	if c.State().Typing {
		t.Error("typing should end once the reply is cancelled")
	}
	if len(c.State().Messages) != 1 {
		t.Errorf("cancelled reply should append nothing, got %d messages", len(c.State().Messages))
	}
}

func TestRunLines_Seed(t *testing.T) {
	p := &chat.MockProvider{Content: "ok"}
	c := newLineController(p)
	var out bytes.Buffer

	if err := runLines(context.Background(), c, strings.NewReader("hi\n/seed\n"), &out); err != nil {
		t.Fatalf("runLines failed: %v", err)
	}

	want := "[09:05 AM] You: hi\n" +
		"[09:05 AM] Assistant: ok\n" +
		"-- conversation cleared --\n" +
		"[09:05 AM] You: Summarize our weekly goals and turn them into a checklist.\n" +
		"[09:05 AM] Assistant: Sure. I will generate a concise summary and a checklist for review.\n"
	if out.String() != want {
		t.Errorf("transcript = %q, want %q", out.String(), want)
	}
	if p.Calls() != 1 {
		t.Errorf("seeding should not call the provider, got %d calls", p.Calls())
	}
}
