package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Render draws row-major cells as one line per row. Runs of equal cells are
// styled together.
func Render(cells []bool, width int, theme Theme) string {
	if width <= 0 || len(cells) == 0 {
		return ""
	}
	alive, dead := theme.aliveStyle(), theme.deadStyle()

	rows := make([]string, 0, len(cells)/width)
	for start := 0; start < len(cells); start += width {
		row := cells[start:min(start+width, len(cells))]
		var b strings.Builder
		for i := 0; i < len(row); {
			j := i
			for j < len(row) && row[j] == row[i] {
				j++
			}
			glyph, style := theme.DeadCell, dead
			if row[i] {
				glyph, style = theme.AliveCell, alive
			}
			run := strings.Repeat(glyph, j-i)
			if theme.styled() {
				run = style.Render(run)
			}
			b.WriteString(run)
			i = j
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

// Framed renders cells inside a rounded border in the theme's border color.
func Framed(cells []bool, width int, theme Theme) string {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
	return frame.Render(Render(cells, width, theme))
}

// PopulationPlot charts a per-generation series. Empty series render as "".
func PopulationPlot(series []float64, caption string, width, height int) string {
	if len(series) == 0 {
		return ""
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.Plot(series, opts...)
}
