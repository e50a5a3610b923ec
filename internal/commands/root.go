// Package commands provides CLI commands for llmchat.
package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/llmchat/internal/config"
	"github.com/diogo/llmchat/internal/render"
	"github.com/diogo/llmchat/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootFlags holds flags shared by every command
type rootFlags struct {
	theme     string
	minDelay  time.Duration
	maxDelay  time.Duration
	responses string
	logFile   string
	verbose   bool

	// one-shot query flags
	output string
	file   string
}

// NewRootCmd creates the llmchat command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "llmchat [prompt]",
		Short: "A terminal chat UI with simulated assistant replies",
		Long: `llmchat is a terminal chat interface. Messages you send get a
simulated assistant reply after a short typing delay; no network
service is contacted.

Examples:
  llmchat                               Start interactive chat
  llmchat "What is Go?"                 Send a single prompt
  llmchat -f prompt.md                  Read the prompt from a file
  llmchat "Hello" -o reply.md           Save the reply to a file
  printf 'hi\nbye\n' | llmchat chat     Line mode for scripts
  llmchat config                        Configure settings
  llmchat themes                        List colour themes`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "llmchat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if flags.file != "" {
				data, err := os.ReadFile(flags.file)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				return runQuery(cmd, deps, flags, string(data))
			}

			if len(args) > 0 {
				return runQuery(cmd, deps, flags, args[0])
			}

			return runChat(cmd, deps, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.theme, "theme", "", "TUI colour theme ("+strings.Join(render.TUIThemeNames(), ", ")+")")
	pf.DurationVar(&flags.minDelay, "min-delay", 0, "Shortest simulated typing delay (e.g. 500ms)")
	pf.DurationVar(&flags.maxDelay, "max-delay", 0, "Longest simulated typing delay (e.g. 2s)")
	pf.StringVar(&flags.responses, "responses", "", "JSON or YAML file with canned replies")
	pf.StringVar(&flags.logFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&flags.verbose, "verbose", false, "Enable debug logging")

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Save the reply to file")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Read prompt from file")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps, flags))
	cmd.AddCommand(NewConfigCmd(deps, flags))
	cmd.AddCommand(NewThemesCmd(deps, flags))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.FormatError(err))
		os.Exit(1)
	}
}

// resolveConfig loads the config file and applies flag overrides
func resolveConfig(cmd *cobra.Command, deps *Dependencies, flags *rootFlags) (config.Config, error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	changed := func(name string) bool {
		f := cmd.Flag(name)
		return f != nil && f.Changed
	}

	if changed("theme") {
		cfg.TUITheme = flags.theme
	}
	if changed("min-delay") {
		cfg.MinDelayMs = int(flags.minDelay / time.Millisecond)
	}
	if changed("max-delay") {
		cfg.MaxDelayMs = int(flags.maxDelay / time.Millisecond)
	}
	if changed("responses") {
		cfg.ResponsesFile = flags.responses
	}
	if changed("log-file") {
		cfg.LogFile = flags.logFile
	}
	if changed("verbose") {
		cfg.Verbose = flags.verbose
	}

	if cfg.TUITheme == "" {
		cfg.TUITheme = render.DefaultTUITheme
	}
	if _, ok := render.GetTUIThemeByName(cfg.TUITheme); !ok {
		return cfg, fmt.Errorf("unknown theme %q (available: %s)", cfg.TUITheme, strings.Join(render.TUIThemeNames(), ", "))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
