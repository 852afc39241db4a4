package tui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the menus, the creator, the scoreboard
// and the game screen.
type Theme struct {
	Title       lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Description lipgloss.Style

	// Table styles
	Border      lipgloss.Color
	SelectedFG  lipgloss.Color
	SelectedBG  lipgloss.Color
	EmptyNotice lipgloss.Style

	// Palette colors the game screen.
	Palette Palette
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		Border:      lipgloss.Color("240"),
		SelectedFG:  lipgloss.Color("229"),
		SelectedBG:  lipgloss.Color("57"),
		EmptyNotice: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),

		Palette: DefaultPalette(),
	}
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.ItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.SelectedFG = lipgloss.Color("232")
	theme.SelectedBG = lipgloss.Color("250")
	theme.Palette = MonochromePalette()
	return theme
}

// ThemeByName looks up a theme by its flag name.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "default":
		return DefaultTheme(), nil
	case "mono", "monochrome":
		return MonochromeTheme(), nil
	}
	return Theme{}, fmt.Errorf("tui: unknown theme %q", name)
}

// Global theme (can be changed at startup)
var (
	themeMu      sync.RWMutex
	currentTheme = DefaultTheme()
)

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = theme
}

// CurrentTheme returns the current global theme.
func CurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}
