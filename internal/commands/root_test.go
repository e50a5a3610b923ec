package commands

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/diogo/llmchat/internal/config"
	apierrors "github.com/diogo/llmchat/internal/errors"
)

func TestRootCommand_Help(t *testing.T) {
	cmd := NewRootCmd(nil)
	if cmd.Use != "llmchat [prompt]" {
		t.Errorf("Expected use 'llmchat [prompt]', got %s", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}
	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
	if cmd.Args == nil {
		t.Error("Args validation should be configured")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCmd(nil)

	for _, name := range []string{"chat", "config", "themes"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	cmd := NewRootCmd(nil)

	for _, name := range []string{"theme", "min-delay", "max-delay", "responses", "log-file", "verbose"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
	for _, name := range []string{"output", "file", "version"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}
	if f := cmd.PersistentFlags().Lookup("responses"); f != nil && !strings.Contains(f.Usage, "YAML") {
		t.Errorf("--responses usage = %q, want it to mention YAML", f.Usage)
	}
}

func TestRootCommand_Version(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"short", []string{"-v"}},
		{"long", []string{"--version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			if err := env.run(tt.args...); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if !strings.Contains(env.stdout.String(), "llmchat "+Version) {
				t.Errorf("unexpected version output %q", env.stdout.String())
			}
			if env.provider.Calls() != 0 {
				t.Error("version should not start a reply")
			}
		})
	}
}

func TestRootCommand_TooManyArgs(t *testing.T) {
	env := newTestEnv(t, "")
	if err := env.run("one", "two"); err == nil {
		t.Error("expected an error for two positional arguments")
	}
}

func TestResolveConfig_FlagOverrides(t *testing.T) {
	env := newTestEnv(t, "")
	args := []string{"config", "--print",
		"--theme", "nord",
		"--min-delay", "10ms",
		"--max-delay", "250ms",
		"--responses", "/tmp/responses.json",
		"--log-file", "/tmp/llmchat.log",
		"--verbose",
	}
	if err := env.run(args...); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	out := env.stdout.String()
	if !gjson.Valid(out) {
		t.Fatalf("config output is not JSON: %q", out)
	}

	checks := map[string]string{
		"tui_theme":      "nord",
		"min_delay_ms":   "10",
		"max_delay_ms":   "250",
		"responses_file": "/tmp/responses.json",
		"log_file":       "/tmp/llmchat.log",
		"verbose":        "true",
		"time_format":    config.TimeFormat12h,
	}
	for path, want := range checks {
		if got := gjson.Get(out, path).String(); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
}

func TestResolveConfig_FileValuesKeptWithoutFlags(t *testing.T) {
	env := newTestEnv(t, "")
	env.deps.LoadConfig = func() (config.Config, error) {
		cfg := config.DefaultConfig()
		cfg.TUITheme = "tokyonight"
		cfg.MinDelayMs = 5
		cfg.MaxDelayMs = 6
		return cfg, nil
	}

	if err := env.run("config", "--print"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	out := env.stdout.String()
	if got := gjson.Get(out, "tui_theme").String(); got != "tokyonight" {
		t.Errorf("tui_theme = %q, want tokyonight", got)
	}
	if got := gjson.Get(out, "max_delay_ms").Int(); got != 6 {
		t.Errorf("max_delay_ms = %d, want 6", got)
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		load    func() (config.Config, error)
		wantErr string
	}{
		{
			name:    "unknown theme",
			args:    []string{"config", "--print", "--theme", "dracula"},
			wantErr: "unknown theme",
		},
		{
			name:    "max below min",
			args:    []string{"config", "--print", "--min-delay", "2s", "--max-delay", "1s"},
			wantErr: "invalid configuration",
		},
		{
			name: "load failure",
			args: []string{"config", "--print"},
			load: func() (config.Config, error) {
				return config.DefaultConfig(), errors.New("permission denied")
			},
			wantErr: "failed to load config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			if tt.load != nil {
				env.deps.LoadConfig = tt.load
			}

			err := env.run(tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestQuery_PrintsRawReplyWhenPiped(t *testing.T) {
	env := newTestEnv(t, "")

	if err := env.run("  What is Go?  "); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if got := env.stdout.String(); got != "Hi there\n" {
		t.Errorf("stdout = %q, want %q", got, "Hi there\n")
	}
	if env.provider.LastPrompt() != "What is Go?" {
		t.Errorf("prompt = %q, want trimmed text", env.provider.LastPrompt())
	}
	if env.stderr.Len() != 0 {
		t.Errorf("no spinner expected when piped, got %q", env.stderr.String())
	}
}

func TestQuery_EmptyPrompt(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.run("   ")
	if err == nil || !strings.Contains(err.Error(), "prompt cannot be empty") {
		t.Errorf("expected empty prompt error, got %v", err)
	}
	if env.provider.Calls() != 0 {
		t.Error("provider should not be called")
	}
}

func TestQuery_FromFile(t *testing.T) {
	env := newTestEnv(t, "")
	path := filepath.Join(t.TempDir(), "prompt.md")
	if err := os.WriteFile(path, []byte("prompt from file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := env.run("-f", path); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if env.provider.LastPrompt() != "prompt from file" {
		t.Errorf("prompt = %q", env.provider.LastPrompt())
	}
}

func TestQuery_MissingFile(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.run("-f", filepath.Join(t.TempDir(), "missing.md"))
	if err == nil || !strings.Contains(err.Error(), "failed to read file") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestQuery_OutputFile(t *testing.T) {
	env := newTestEnv(t, "")
	out := filepath.Join(t.TempDir(), "reply.md")

	if err := env.run("hello", "-o", out); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reply file not written: %v", err)
	}
	if string(data) != "Hi there" {
		t.Errorf("file content = %q", data)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("stdout should be empty when saving, got %q", env.stdout.String())
	}
}

func TestQuery_ProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"network", apierrors.NewNetworkError("complete", errors.New("connection refused"))},
		{"timeout", apierrors.NewTimeoutError("too slow")},
		{"other", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			env.provider.Err = tt.err

			err := env.run("hello")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), "generation failed") {
				t.Errorf("unexpected error %q", err)
			}
			if !errors.Is(err, tt.err) {
				t.Error("provider error should be wrapped")
			}
		})
	}
}

func TestQuery_ResponsesFileErrors(t *testing.T) {
	env := newTestEnv(t, "")
	path := filepath.Join(t.TempDir(), "responses.json")
	if err := os.WriteFile(path, []byte(`{"responses": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	err := env.run("hello", "--responses", path)
	if err == nil || !apierrors.IsParseError(err) {
		t.Errorf("expected a parse error, got %v", err)
	}
}
