package render

import (
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Markdown style names
const (
	ThemeFunland = "funland"
	ThemeDark    = "dark"
	ThemeLight   = "light"
)

func stringPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

// FunlandStyle returns the glamour style used for assistant replies:
// the dark style with the Fun Land palette on headings, emphasis and links.
func FunlandStyle() ansi.StyleConfig {
	cfg := styles.DarkStyleConfig

	cfg.Document.Margin = nil
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""

	cfg.Heading.Color = stringPtr(string(FunlandTheme.Primary))
	cfg.H1.Color = stringPtr(string(FunlandTheme.Text))
	cfg.H1.BackgroundColor = stringPtr(string(FunlandTheme.Primary))
	cfg.Strong.Color = stringPtr(string(FunlandTheme.Accent))
	cfg.Strong.Bold = boolPtr(true)
	cfg.Emph.Color = stringPtr(string(FunlandTheme.Secondary))
	cfg.Link.Color = stringPtr(string(FunlandTheme.Secondary))
	cfg.LinkText.Color = stringPtr(string(FunlandTheme.Primary))
	cfg.Item.BlockPrefix = "🌟 "
	cfg.Code.Color = stringPtr(string(FunlandTheme.Error))

	return cfg
}

// IsBuiltinStyle reports whether style names a style that needs no file.
func IsBuiltinStyle(style string) bool {
	switch style {
	case ThemeFunland, ThemeDark, ThemeLight, "dracula", "pink", "notty", "ascii":
		return true
	default:
		return false
	}
}

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes returns the markdown styles that can be selected by name.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemeFunland, Description: "Fun Land colors (default)"},
		{Name: ThemeDark, Description: "Dark theme"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: "pink", Description: "Glamour pink"},
		{Name: "dracula", Description: "Dracula color scheme"},
		{Name: "notty", Description: "Plain text (no styling)"},
		{Name: "ascii", Description: "ASCII-only output"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
