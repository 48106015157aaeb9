package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"polydraw/internal/config"
)

var vertexColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "x", Width: 9},
	{Title: "y", Width: 9},
	{Title: "color", Width: 9},
	{Title: "alpha", Width: 6},
}

// vertexRows lists the committed vertices with their colors.
func (m Model) vertexRows() []table.Row {
	verts, cols := m.eng.Vertices(), m.eng.Colors()
	rows := make([]table.Row, 0, len(verts))
	for i, v := range verts {
		row := table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.4f", v.X),
			fmt.Sprintf("%.4f", v.Y),
			"", "",
		}
		if i < len(cols) {
			row[3] = config.ToHex(cols[i])
			row[4] = fmt.Sprintf("%.2f", cols[i].A)
		}
		rows = append(rows, row)
	}
	return rows
}

// refreshAttrs rebuilds the vertex table. An empty polygon closes it.
func (m *Model) refreshAttrs() {
	rows := m.vertexRows()
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no vertices"
		return
	}
	m.tbl.SetRows(rows)
}

// afterChange keeps views derived from the engine in sync.
func (m *Model) afterChange() {
	if m.showAttrs {
		m.refreshAttrs()
	}
}
