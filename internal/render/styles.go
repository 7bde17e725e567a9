package render

import "github.com/charmbracelet/lipgloss"

var (
	// Block palette, from the most expensive tier to the cheapest
	blockColors = map[int]lipgloss.Color{
		1: lipgloss.Color("#E03131"), // Red
		2: lipgloss.Color("#F76707"), // Orange
		3: lipgloss.Color("#FAB005"), // Yellow
		4: lipgloss.Color("#74B816"), // Light green
		5: lipgloss.Color("#2F9E44"), // Green
	}
	colorMuted = lipgloss.Color("#6C757D")

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	currentMarkerStyle = lipgloss.NewStyle().
				Bold(true)
)

func blockStyle(id int) lipgloss.Style {
	color, ok := blockColors[id]
	if !ok {
		color = colorMuted
	}
	return lipgloss.NewStyle().
		Background(color).
		Foreground(lipgloss.Color("#000000")).
		Bold(true)
}
