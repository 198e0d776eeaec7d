package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the TUI interface
type TUITheme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors: Primary for the header and assistant text, Secondary
	// for user bubbles, Accent for assistant bubbles, Error for failures.
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in TUI themes
var (
	// FunlandTheme is the default bright theme: hot pink, sunny yellow and grass green
	FunlandTheme = TUITheme{
		Name:        "funland",
		Description: "Fun Land - pink, yellow and green on white",

		Background: lipgloss.Color("#FFF5FA"),
		Surface:    lipgloss.Color("#FFFFFF"),
		Border:     lipgloss.Color("#FF69B4"),

		Primary:   lipgloss.Color("#FF69B4"), // Hot pink
		Secondary: lipgloss.Color("#4CAF50"), // Green
		Accent:    lipgloss.Color("#FFD700"), // Gold
		Warning:   lipgloss.Color("#FFA500"), // Orange
		Error:     lipgloss.Color("#FF6B6B"), // Coral

		Text:     lipgloss.Color("#333333"),
		TextDim:  lipgloss.Color("#8A6D7B"),
		TextMute: lipgloss.Color("#D9B8C8"),
	}

	// NightTheme keeps the Fun Land accents on a dark background
	NightTheme = TUITheme{
		Name:        "night",
		Description: "Fun Land at night - the same accents for dark terminals",

		Background: lipgloss.Color("#1B1030"),
		Surface:    lipgloss.Color("#2A1B45"),
		Border:     lipgloss.Color("#C45BAA"),

		Primary:   lipgloss.Color("#FF8CC6"),
		Secondary: lipgloss.Color("#7BD88F"),
		Accent:    lipgloss.Color("#FFE066"),
		Warning:   lipgloss.Color("#FFB86C"),
		Error:     lipgloss.Color("#FF7A7A"),

		Text:     lipgloss.Color("#F8F0FF"),
		TextDim:  lipgloss.Color("#A999C2"),
		TextMute: lipgloss.Color("#5E4B7D"),
	}
)

var (
	themeMu         sync.RWMutex
	currentTUITheme = FunlandTheme
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

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	switch name {
	case "funland", "":
		return FunlandTheme, true
	case "night":
		return NightTheme, true
	default:
		return TUITheme{}, false
	}
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{FunlandTheme, NightTheme}
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
