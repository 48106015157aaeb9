package tui

import (
	"github.com/charmbracelet/lipgloss"

	"polydraw/internal/config"
	"polydraw/internal/geom"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
)

func hex(c geom.Color) string { return config.ToHex(c) }

// swatch renders a two cell block in c.
func swatch(c geom.Color) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex(c))).Render("  ")
}
