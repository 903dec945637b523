package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-hub/internal/core"
)

// Palette maps logical colors to lipgloss styles for one theme, plus the
// styles used by menu and stats screens.
type Palette struct {
	cells    map[core.Color]lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Border   lipgloss.Color
}

func newPalette(accent, muted, border, selFg, selBg string) Palette {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return Palette{
		cells: map[core.Color]lipgloss.Style{
			core.ColorDefault: lipgloss.NewStyle(),
			core.ColorRed:     fg("1"),
			core.ColorGreen:   fg("2"),
			core.ColorYellow:  fg("3"),
			core.ColorBlue:    fg("4"),
			core.ColorMagenta: fg("5"),
			core.ColorCyan:    fg("6"),
			core.ColorGray:    fg("245"),
			core.ColorAccent:  fg(accent).Bold(true),
			core.ColorMuted:   fg(muted),
		},
		Title:    fg(accent).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(selFg)).Background(lipgloss.Color(selBg)).Bold(true),
		Muted:    fg(muted),
		Error:    fg("9"),
		Border:   lipgloss.Color(border),
	}
}

var (
	lightPalette = newPalette("25", "242", "250", "231", "25")
	darkPalette  = newPalette("229", "241", "240", "229", "57")
)

// PaletteFor returns the palette of a theme. Unknown themes get the light one.
func PaletteFor(t core.Theme) Palette {
	if t == core.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

func (p Palette) cell(c core.Color) lipgloss.Style {
	if style, ok := p.cells[c]; ok {
		return style
	}
	return p.cells[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme core.Theme) string {
	pal := PaletteFor(theme)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				// Zero runes continue a wide rune from the previous cell.
				if cell.Rune != 0 {
					run.WriteRune(cell.Rune)
				}
				x++
			}
			sb.WriteString(pal.cell(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerBlock centers a multi-line block within given width.
func centerBlock(block string, width int) string {
	if lipgloss.Width(block) >= width {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
