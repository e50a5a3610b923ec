package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diogo/llmchat/internal/chat"
	"github.com/diogo/llmchat/internal/config"
)

func TestNewSession_CannedProviderUsesConfig(t *testing.T) {
	env := newTestEnv(t, "")
	env.deps.NewProvider = nil

	cfg := config.DefaultConfig()
	cfg.LogFile = ""
	cfg.MinDelayMs = 3
	cfg.MaxDelayMs = 3
	cfg.TimeFormat = config.TimeFormat24h

	s, err := newSession(cfg, env.deps)
	if err != nil {
		t.Fatalf("newSession() returned error: %v", err)
	}
	defer s.close()

	canned, ok := s.provider.(*chat.CannedProvider)
	if !ok {
		t.Fatalf("expected a canned provider, got %T", s.provider)
	}
	if d := canned.Delay(); d != 3*time.Millisecond {
		t.Errorf("Delay() = %v, want 3ms", d)
	}
	if got := s.controller.FormatTime(time.Date(2026, 1, 1, 15, 4, 0, 0, time.Local)); got != "15:04" {
		t.Errorf("FormatTime() = %q, want 24h layout", got)
	}
}

func TestNewSession_LogFileFailureWarns(t *testing.T) {
	env := newTestEnv(t, "")
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(blocker, "llmchat.log")

	s, err := newSession(cfg, env.deps)
	if err != nil {
		t.Fatalf("newSession() returned error: %v", err)
	}
	defer s.close()

	if !strings.Contains(env.stderr.String(), "logging disabled") {
		t.Errorf("expected a warning, got %q", env.stderr.String())
	}
}

func TestSession_WatchResponses(t *testing.T) {
	env := newTestEnv(t, "")
	env.deps.NewProvider = nil

	path := filepath.Join(t.TempDir(), "responses.yaml")
	if err := os.WriteFile(path, []byte("responses:\n  - first\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.LogFile = ""
	cfg.ResponsesFile = path

	s, err := newSession(cfg, env.deps)
	if err != nil {
		t.Fatalf("newSession() returned error: %v", err)
	}
	s.watchResponses(context.Background())
	if s.watcher == nil {
		t.Fatal("watcher should start for a canned provider with a responses file")
	}

	canned := s.provider.(*chat.CannedProvider)
	if got := canned.Pick(""); got != "first" {
		t.Errorf("Pick() = %q, want first", got)
	}

	if err := os.WriteFile(path, []byte("responses:\n  - second\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for canned.Pick("") != "second" {
		if time.Now().After(deadline) {
			t.Fatal("responses were not reloaded")
		}
		time.Sleep(20 * time.Millisecond)
	}

	s.close()
}

func TestSession_WatchResponsesSkipsCustomProvider(t *testing.T) {
	env := newTestEnv(t, "")

	path := filepath.Join(t.TempDir(), "responses.json")
	if err := os.WriteFile(path, []byte(`{"responses": ["x"]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.LogFile = ""
	cfg.ResponsesFile = path

	s, err := newSession(cfg, env.deps)
	if err != nil {
		t.Fatalf("newSession() returned error: %v", err)
	}
	defer s.close()

	s.watchResponses(context.Background())
	if s.watcher != nil {
		t.Error("watcher should not start for a custom provider")
	}
}
