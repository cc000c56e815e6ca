package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-quest/internal/core"
)

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// palette is indexed by core.Color. Unknown colors render unstyled.
var palette = [...]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         fg("1"),
	core.ColorGreen:       fg("2"),
	core.ColorYellow:      fg("3"),
	core.ColorBlue:        fg("4"),
	core.ColorMagenta:     fg("5"),
	core.ColorCyan:        fg("6"),
	core.ColorWhite:       fg("7"),
	core.ColorBrightRed:   fg("9"),
	core.ColorBrightWhite: fg("15"),
	core.ColorOrange:      fg("208"),
	core.ColorGray:        fg("245"),
	core.ColorPink:        fg("211").Bold(true),

	core.ColorConfettiRed:    fg("#ff4757"),
	core.ColorConfettiGreen:  fg("#2ed573"),
	core.ColorConfettiBlue:   fg("#1e90ff"),
	core.ColorConfettiOrange: fg("#ffa502"),
	core.ColorConfettiWhite:  fg("#ffffff"),
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each row is emitted as spans of equal color, one escape sequence per span.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	span := make([]rune, 0, s.Width())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		renderRow(&sb, s, y, span)
	}
	return sb.String()
}

func renderRow(sb *strings.Builder, s *core.Screen, y int, span []rune) {
	color := s.GetCell(0, y).Color
	span = span[:0]
	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != color {
			sb.WriteString(styleFor(color).Render(string(span)))
			color, span = cell.Color, span[:0]
		}
		span = append(span, cell.Rune)
	}
	if len(span) > 0 {
		sb.WriteString(styleFor(color).Render(string(span)))
	}
}
