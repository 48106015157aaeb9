package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	// Header
	header := titleStyle.Render(" polydraw ─ polygon and Koch sketchpad ")
	header = lipgloss.NewStyle().Width(lo.contentW).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(lo.sidebarW).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lo.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.mapH-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		m.ta.SetWidth(lo.mapW)
		m.ta.SetHeight(min(lo.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.ta.View())
	default:
		mapView = strings.Join(m.cv.toLines(m.closeMark()), "\n")
	}

	// Body row
	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	var status string
	if m.iterMode {
		status = " iterations: " + m.ti.View() + " "
	} else {
		status = dimStyle.Render(" " + m.status + " ")
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	right := m.renderInfo()
	spacerW := max(0, lo.contentW-lipgloss.Width(left)-lipgloss.Width(right))
	right = lipgloss.Place(spacerW+lipgloss.Width(right), 1, lipgloss.Right, lipgloss.Center, right)
	footer := lipgloss.NewStyle().Width(lo.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

// renderInfo shows the picker color, polygon state and cursor position.
func (m Model) renderInfo() string {
	parts := []string{
		swatch(m.ui.Color()),
		dimStyle.Render(fmt.Sprintf(" %s n=%d", m.eng.State(), m.eng.Len())),
	}
	if m.eng.KochEnabled() {
		parts = append(parts, dimStyle.Render(fmt.Sprintf(" koch=%d", m.eng.KochIterations())))
	}
	if m.eng.FillEnabled() {
		parts = append(parts, dimStyle.Render(" fill"))
	}
	if m.hovering {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("  x=%.3f y=%.3f ", m.hoverPos.X, m.hoverPos.Y)))
	}
	return strings.Join(parts, "")
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"click vertex",
		"f fill",
		"k/K koch",
		"i iter",
		"[ ] hue",
		"b bg",
		"c clear",
		"s save",
		"e png",
		"Tab open",
		"p paste",
		"a table",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
