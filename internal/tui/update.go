package tui

import (
	"fmt"
	"strconv"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"polydraw/internal/geom"
	"polydraw/internal/poly"
	"polydraw/internal/scene"
)

// hueStep is the hue rotation per [ or ] press, in degrees.
const hueStep = 15

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.iterMode {
			return m.updateIterations(msg)
		}
		if m.showAttrs {
			switch msg.String() {
			case "esc", "a":
				m.showAttrs = false
				return m, nil
			case "up", "down", "pgup", "pgdown", "home", "end":
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "f":
			m.eng.OnToggleFill()
			m.status = fmt.Sprintf("fill: %v", m.eng.FillEnabled())
		case "k":
			m.eng.OnRequestKoch()
			m.status = fmt.Sprintf("koch: %d iterations, %d points", m.eng.KochIterations(), m.eng.KochPoints())
		case "K":
			m.eng.OnClearKoch()
			m.status = "koch: off"
		case "+", "=":
			m.setIterations(m.ui.iterations + 1)
		case "-", "_":
			m.setIterations(m.ui.iterations - 1)
		case "c":
			m.eng.OnClear()
			m.status = "cleared"
			m.afterChange()
		case "s":
			m.save()
		case "e":
			m.exportPNG()
		case "[":
			m.ui.shiftHue(-hueStep)
			m.status = "color: " + hex(m.ui.Color())
		case "]":
			m.ui.shiftHue(hueStep)
			m.status = "color: " + hex(m.ui.Color())
		case "b":
			m.eng.OnBackground(m.ui.Color())
			m.status = "background: " + hex(m.eng.Background())
		case "B":
			m.eng.OnBackground(m.cfg.BackgroundColor())
			m.status = "background: " + hex(m.eng.Background())
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			m.resize()
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
			return m, nil
		case "i":
			m.iterMode = true
			m.ti.SetValue(strconv.Itoa(m.ui.iterations))
			m.ti.Focus()
			m.status = "koch iterations"
			return m, nil
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrs()
			}
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		}
	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		src := strings.TrimSpace(m.ta.Value())
		if src == "" {
			m.status = "paste: empty"
			return m, nil
		}
		rec, err := scene.Decode(strings.NewReader(src))
		if err == nil {
			err = m.eng.OnLoad(rec)
		}
		if err != nil {
			m.status = "scene error: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("loaded pasted scene  vertices=%d koch=%d", rec.VertexAmt, rec.KochIterationAmt)
		m.pasteMode = false
		m.ta.Blur()
		m.afterChange()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) updateIterations(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.iterMode = false
		m.ti.Blur()
		return m, nil
	case "enter":
		n, err := strconv.Atoi(strings.TrimSpace(m.ti.Value()))
		if err != nil || n < 1 || n > geom.MaxIterations {
			m.status = fmt.Sprintf("iterations must be 1..%d", geom.MaxIterations)
			return m, nil
		}
		m.iterMode = false
		m.ti.Blur()
		m.ui.iterations = n
		m.eng.OnRequestKoch()
		m.status = fmt.Sprintf("koch: %d iterations, %d points", n, m.eng.KochPoints())
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// setIterations changes the requested depth and redraws the curve when it
// is shown.
func (m *Model) setIterations(n int) {
	n = min(max(n, 1), geom.MaxIterations)
	m.ui.iterations = n
	if m.eng.KochEnabled() {
		m.eng.OnRequestKoch()
	}
	m.status = fmt.Sprintf("iterations: %d (%d points)", n, geom.KochLen(n))
}

func (m *Model) updateMouse(msg tea.MouseMsg) {
	lo := m.layout()
	cx, cy := msg.X-lo.mapX, msg.Y-lo.mapY
	if cx < 0 || cy < 0 || cx >= lo.mapW || cy >= lo.mapH || m.pasteMode || m.showAttrs {
		m.hovering = false
		return
	}
	m.hovering = true
	m.hoverCellX, m.hoverCellY = cx, cy
	m.hoverPos = m.cv.pointAt(cx, cy)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		before := m.eng.State()
		m.eng.OnPointerDown(m.hoverPos)
		switch after := m.eng.State(); {
		case after == poly.Closed && before != poly.Closed:
			m.status = fmt.Sprintf("polygon closed  vertices=%d", m.eng.Len())
		case after == poly.Empty:
			m.status = "cleared"
		default:
			m.status = fmt.Sprintf("vertex %d at %.3f, %.3f", m.eng.Len(), m.hoverPos.X, m.hoverPos.Y)
		}
		m.afterChange()
	case msg.Action == tea.MouseActionMotion:
		m.eng.OnPointerMove(m.hoverPos)
	}
}

// closeMark marks the first vertex when a click at the hovered cell would
// close the polygon.
func (m Model) closeMark() mark {
	if !m.hovering || m.eng.State() != poly.Building || m.eng.Len() < 3 {
		return mark{}
	}
	first := m.eng.Vertices()[0]
	if !geom.Near(first, m.hoverPos, poly.CloseThreshold) {
		return mark{}
	}
	x, y := m.cv.cellOf(first)
	return mark{x: x, y: y, on: true}
}
