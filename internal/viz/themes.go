package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the glyphs and color scheme used to draw a grid.
type Theme struct {
	Name      string
	Alive     lipgloss.Color
	Dead      lipgloss.Color
	Border    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	AliveCell string
	DeadCell  string
}

var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Alive:     lipgloss.Color("#ff00ff"),
		Dead:      lipgloss.Color("#1a001a"),
		Border:    lipgloss.Color("#00ffff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		AliveCell: "█",
		DeadCell:  "·",
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Alive:     lipgloss.Color("#00ff00"), // Green phosphor
		Dead:      lipgloss.Color("#003300"),
		Border:    lipgloss.Color("#00cc00"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		AliveCell: "#",
		DeadCell:  ".",
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Alive:     lipgloss.Color("#00a8cc"),
		Dead:      lipgloss.Color("#001a33"),
		Border:    lipgloss.Color("#0077be"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		AliveCell: "●",
		DeadCell:  " ",
	}

	// ThemePlain draws '#' and '.' without any styling.
	ThemePlain = Theme{
		Name:      "plain",
		AliveCell: "#",
		DeadCell:  ".",
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemePlain,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme returns the theme after t in Themes.
func NextTheme(t Theme) Theme {
	for i, candidate := range Themes {
		if candidate.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func (t Theme) styled() bool {
	return t.Alive != "" || t.Dead != ""
}

func (t Theme) aliveStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Alive).Bold(true)
}

func (t Theme) deadStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Dead)
}
