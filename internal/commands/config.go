package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies, flags *rootFlags) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Open configuration menu",
		Long: `Interactive menu to configure llmchat settings.

With --print, or when stdout is not a terminal, the resolved
configuration (file values plus flag overrides) is printed as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := deps.withDefaults()

			cfg, err := resolveConfig(cmd, deps, flags)
			if err != nil {
				return err
			}

			if printOnly || !deps.IsTerminal() {
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				fmt.Fprintln(deps.Stdout, string(data))
				return nil
			}

			return deps.TUI.RunConfig(cfg)
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the resolved configuration as JSON")
	return cmd
}
