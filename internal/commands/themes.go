package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/llmchat/internal/render"
)

// NewThemesCmd creates the themes command
func NewThemesCmd(deps *Dependencies, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available colour themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := deps.withDefaults()

			current := render.DefaultTUITheme
			if cfg, err := resolveConfig(cmd, deps, flags); err == nil {
				current = cfg.TUITheme
			}

			decorated := deps.IsTerminal()
			for _, theme := range render.AvailableTUIThemes() {
				marker := "  "
				if theme.Name == current {
					marker = "* "
				}

				name := fmt.Sprintf("%-12s", theme.Name)
				if decorated {
					swatch := lipgloss.NewStyle().Background(theme.Primary).Render("  ") +
						lipgloss.NewStyle().Background(theme.Surface).Render("  ")
					name = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(name) + " " + swatch
				}
				fmt.Fprintf(deps.Stdout, "%s%s  %s\n", marker, name, theme.Description)
			}
			return nil
		},
	}
}
