package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// DefaultTUITheme is the theme used when none is configured.
const DefaultTUITheme = "llmchat"

// TUITheme defines the color scheme for the chat interface
type TUITheme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Error   lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color

	// Avatar badges
	UserAvatar      lipgloss.Color
	AssistantAvatar lipgloss.Color
}

// Built-in TUI themes
var (
	// LLMChatTheme is the near-black palette with a peach accent
	LLMChatTheme = TUITheme{
		Name:        "llmchat",
		Description: "llm.chat - Near-black with a peach accent",

		Background: lipgloss.Color("#101010"),
		Surface:    lipgloss.Color("#151515"),
		Border:     lipgloss.Color("#2a2a2a"),

		Primary: lipgloss.Color("#FFCFA8"),
		Accent:  lipgloss.Color("#FFCFA8"),
		Error:   lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#FFFFFF"),
		TextDim:  lipgloss.Color("#A0A0A0"),
		TextMute: lipgloss.Color("#65737E"),

		UserAvatar:      lipgloss.Color("#65737E"),
		AssistantAvatar: lipgloss.Color("#FFCFA8"),
	}

	// TokyoNightTheme is based on the Tokyo Night color scheme
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary: lipgloss.Color("#7aa2f7"),
		Accent:  lipgloss.Color("#bb9af7"),
		Error:   lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),

		UserAvatar:      lipgloss.Color("#9ece6a"),
		AssistantAvatar: lipgloss.Color("#7aa2f7"),
	}

	// CatppuccinMochaTheme is based on the Catppuccin Mocha palette
	CatppuccinMochaTheme = TUITheme{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - Warm dark theme with pastel colors",

		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Border:     lipgloss.Color("#45475a"),

		Primary: lipgloss.Color("#89b4fa"), // Blue
		Accent:  lipgloss.Color("#cba6f7"), // Mauve
		Error:   lipgloss.Color("#f38ba8"), // Red

		Text:     lipgloss.Color("#cdd6f4"),
		TextDim:  lipgloss.Color("#6c7086"),
		TextMute: lipgloss.Color("#45475a"),

		UserAvatar:      lipgloss.Color("#a6e3a1"), // Green
		AssistantAvatar: lipgloss.Color("#89b4fa"),
	}

	// NordTheme is based on the Nord color palette
	NordTheme = TUITheme{
		Name:        "nord",
		Description: "Nord - Arctic-inspired theme with cool tones",

		Background: lipgloss.Color("#2e3440"),
		Surface:    lipgloss.Color("#3b4252"),
		Border:     lipgloss.Color("#4c566a"),

		Primary: lipgloss.Color("#88c0d0"), // Frost
		Accent:  lipgloss.Color("#b48ead"), // Aurora purple
		Error:   lipgloss.Color("#bf616a"), // Aurora red

		Text:     lipgloss.Color("#eceff4"),
		TextDim:  lipgloss.Color("#7b88a1"),
		TextMute: lipgloss.Color("#4c566a"),

		UserAvatar:      lipgloss.Color("#a3be8c"), // Aurora green
		AssistantAvatar: lipgloss.Color("#88c0d0"),
	}
)

// builtinThemes is ordered for display
var builtinThemes = []TUITheme{
	LLMChatTheme,
	TokyoNightTheme,
	CatppuccinMochaTheme,
	NordTheme,
}

var (
	themeMu         sync.RWMutex
	currentTUITheme = LLMChatTheme
)

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTUITheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName returns a TUI theme by its name (case-insensitive)
func GetTUIThemeByName(name string) (TUITheme, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range builtinThemes {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	themes := make([]TUITheme, len(builtinThemes))
	copy(themes, builtinThemes)
	return themes
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	names := make([]string, len(builtinThemes))
	for i, t := range builtinThemes {
		names[i] = t.Name
	}
	return names
}
