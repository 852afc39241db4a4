package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/realmquest/internal/core"
)

// Palette maps the colors games draw with to terminal colors.
// Colors missing from a palette render unstyled.
type Palette map[core.Color]lipgloss.Color

// DefaultPalette uses the 16 ANSI colors plus a few 256-color extras.
func DefaultPalette() Palette {
	return Palette{
		core.ColorRed:           "1",
		core.ColorGreen:         "2",
		core.ColorYellow:        "3",
		core.ColorBlue:          "4",
		core.ColorMagenta:       "5",
		core.ColorCyan:          "6",
		core.ColorWhite:         "7",
		core.ColorBrightRed:     "9",
		core.ColorBrightGreen:   "10",
		core.ColorBrightYellow:  "11",
		core.ColorBrightBlue:    "12",
		core.ColorBrightMagenta: "13",
		core.ColorBrightCyan:    "14",
		core.ColorBrightWhite:   "15",
		core.ColorOrange:        "208",
		core.ColorPurple:        "135",
		core.ColorGray:          "245",
	}
}

// MonochromePalette keeps only brightness: bright colors stand out, the
// rest share one gray.
func MonochromePalette() Palette {
	p := Palette{}
	for c := range DefaultPalette() {
		p[c] = "250"
	}
	for _, c := range []core.Color{
		core.ColorBrightRed, core.ColorBrightGreen, core.ColorBrightYellow,
		core.ColorBrightBlue, core.ColorBrightMagenta, core.ColorBrightCyan,
		core.ColorBrightWhite,
	} {
		p[c] = "255"
	}
	p[core.ColorGray] = "242"
	return p
}

// RenderScreen converts a Screen buffer to a styled string using the
// current theme's palette. Adjacent cells of one color share a single
// escape sequence.
func RenderScreen(s *core.Screen) string {
	palette := CurrentTheme().Palette
	styles := make(map[core.Color]lipgloss.Style, len(palette))
	styleFor := func(c core.Color) (lipgloss.Style, bool) {
		if st, ok := styles[c]; ok {
			return st, true
		}
		fg, ok := palette[c]
		if !ok {
			return lipgloss.Style{}, false
		}
		st := lipgloss.NewStyle().Foreground(fg)
		styles[c] = st
		return st, true
	}

	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var span strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			span.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				span.WriteRune(cell.Rune)
			}

			if st, ok := styleFor(color); ok {
				sb.WriteString(st.Render(span.String()))
			} else {
				sb.WriteString(span.String())
			}
		}
	}
	return sb.String()
}
