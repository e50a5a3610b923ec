package render

import (
	"testing"

	"github.com/diogo/llmchat/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = "light"
	cfg.Markdown.EnableEmoji = false

	opts := OptionsFromConfig(cfg)

	if opts.Style != "light" {
		t.Errorf("expected Style='light', got %s", opts.Style)
	}
	if opts.EnableEmoji {
		t.Error("expected EnableEmoji=false")
	}
	if opts.Width != 80 {
		t.Errorf("expected default width 80, got %d", opts.Width)
	}
}

func TestOptionsFromConfig_EnvOverride(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "notty")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = "light"

	opts := OptionsFromConfig(cfg)

	if opts.Style != "notty" {
		t.Errorf("expected Style='notty' from env, got %s", opts.Style)
	}
}

func TestOptionsFromConfig_Renders(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")

	opts := OptionsFromConfig(config.DefaultConfig())

	output, err := Markdown("# Test", opts)
	if err != nil {
		t.Fatalf("Markdown render failed with loaded options: %v", err)
	}
	if output == "" {
		t.Error("expected non-empty output")
	}
}
