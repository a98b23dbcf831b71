package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/biome-crossing/internal/core"
)

// colorStyles holds one lipgloss style per palette entry, indexed by core.Color.
// Built once and only read afterwards, so SSH sessions share it freely.
var colorStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, core.ColorCount)
	for c := range core.ColorCount {
		styles[c] = lipgloss.NewStyle()
		if code := c.ANSI(); code != "" {
			styles[c] = styles[c].Foreground(lipgloss.Color(code))
		}
	}
	return styles
}()

// RenderScreen converts a Screen buffer to a styled string, emitting one
// styled span per run of same-colored cells on a row.
func RenderScreen(s *core.Screen) string {
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
			sb.WriteString(renderSpan(color, span.String()))
		}
	}
	return sb.String()
}

// renderSpan styles text, leaving default and out-of-palette colors unstyled.
func renderSpan(c core.Color, text string) string {
	if c == core.ColorDefault || c >= core.ColorCount {
		return text
	}
	return colorStyles[c].Render(text)
}
