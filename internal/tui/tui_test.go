package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polydraw/internal/buffer"
	"polydraw/internal/config"
	"polydraw/internal/geom"
	"polydraw/internal/poly"
)

func TestCanvasLine(t *testing.T) {
	c := newCanvas(10, 5)
	c.Clear(geom.DefaultBackground)
	require.NoError(t, c.Draw(buffer.PackUniform(buffer.LineStrip, []geom.Point{{X: -1, Y: 0}, {X: 1, Y: 0}}, geom.Black)))
	lines := c.plain()
	assert.Equal(t, strings.Repeat(string(rune(0x2824)), 10), lines[2])
	assert.Equal(t, strings.Repeat(" ", 10), lines[0])
}

func TestCanvasFanFill(t *testing.T) {
	c := newCanvas(10, 5)
	c.Clear(geom.DefaultBackground)
	sq := []geom.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	require.NoError(t, c.Draw(buffer.PackUniform(buffer.TriangleFan, sq, geom.Black)))
	for _, l := range c.plain() {
		assert.Equal(t, strings.Repeat(string(rune(0x28FF)), 10), l)
	}

	c.Clear(geom.Black)
	assert.Equal(t, strings.Repeat(" ", 10), c.plain()[0])
	assert.Equal(t, geom.Black, c.bg)
}

func TestCanvasUnknownPrimitive(t *testing.T) {
	c := newCanvas(4, 4)
	assert.Error(t, c.Draw(buffer.Batch{Primitive: buffer.Primitive(9), Count: 1}))
}

func TestCanvasCellMapping(t *testing.T) {
	c := newCanvas(40, 20)
	for _, cell := range [][2]int{{0, 0}, {13, 7}, {39, 19}} {
		x, y := c.cellOf(c.pointAt(cell[0], cell[1]))
		assert.Equal(t, cell[0], x)
		assert.Equal(t, cell[1], y)
	}
	out := c.toLines(mark{x: 3, y: 2, on: true})
	assert.Contains(t, out[2], "◯")
	assert.NotContains(t, out[1], "◯")
}

func TestPickerHue(t *testing.T) {
	p := newPicker(geom.Color{R: 1, A: 1}, 3)
	p.shiftHue(120)
	c := p.Color()
	assert.InDelta(t, 0, c.R, 1e-6)
	assert.InDelta(t, 1, c.G, 1e-6)
	p.shiftHue(-480)
	assert.InDelta(t, 0, p.hue, 1e-9)
}

func newModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	cfg.SceneDir = t.TempDir()
	m := New(cfg)
	return step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func click(t *testing.T, m Model, x, y int) Model {
	return step(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func key(t *testing.T, m Model, k string) Model {
	return step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func drawTriangle(t *testing.T, m Model) Model {
	m = click(t, m, 10, 5)
	m = click(t, m, 60, 5)
	return click(t, m, 40, 18)
}

func TestModelDrawAndClose(t *testing.T) {
	m := newModel(t)
	assert.Equal(t, 79, m.cv.w)
	assert.Equal(t, 21, m.cv.h)

	m = drawTriangle(t, m)
	require.Equal(t, 3, m.Engine().Len())

	m = step(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})
	assert.True(t, m.closeMark().on)
	assert.NotEmpty(t, m.View())

	m = click(t, m, 10, 5)
	assert.Equal(t, poly.Closed, m.Engine().State())
	assert.Contains(t, m.status, "polygon closed")

	m = key(t, m, "f")
	assert.True(t, m.Engine().FillEnabled())
	assert.Empty(t, m.Engine().LastStats().Failed)

	m = click(t, m, 30, 10)
	assert.Equal(t, poly.Empty, m.Engine().State())
}

func TestModelClickOutsideMap(t *testing.T) {
	m := newModel(t)
	m = click(t, m, 10, 0) // header row
	assert.Zero(t, m.Engine().Len())
	assert.False(t, m.hovering)
}

func TestModelSaveAndReload(t *testing.T) {
	m := newModel(t)
	m = drawTriangle(t, m)
	m = click(t, m, 10, 5)
	m = key(t, m, "s")
	p := filepath.Join(m.cfg.SceneDir, defaultSceneName)
	_, err := os.Stat(p)
	require.NoError(t, err)

	m2 := NewWithPath(m.cfg, p)
	assert.Equal(t, poly.Loaded, m2.Engine().State())
	assert.Equal(t, m.Engine().Vertices(), m2.Engine().Vertices())

	m = key(t, m, "e")
	_, err = os.Stat(filepath.Join(m.cfg.SceneDir, "scene.png"))
	assert.NoError(t, err)
}

func TestModelPasteScene(t *testing.T) {
	m := newModel(t)
	m = key(t, m, "p")
	require.True(t, m.pasteMode)
	m.ta.SetValue(`{"vertexAmt":3,"coordinates":[[0,0],[0.5,0],[0,0.5]],"colors":[[1,0,0,1],[1,0,0,1],[1,0,0,1]],"kochIterationAmt":2,"background":[0,0,0,1]}`)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.pasteMode)
	assert.Equal(t, poly.Loaded, m.Engine().State())
	assert.True(t, m.Engine().KochEnabled())
	assert.Equal(t, geom.Black, m.Engine().Background())

	m = key(t, m, "p")
	m.ta.SetValue(`{"vertexAmt":2}`)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.pasteMode)
	assert.Contains(t, m.status, "scene error")
	assert.Equal(t, 3, m.Engine().Len())
}

func TestModelIterations(t *testing.T) {
	m := newModel(t)
	m = key(t, m, "i")
	require.True(t, m.iterMode)
	m.ti.SetValue("9")
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.iterMode)
	assert.False(t, m.Engine().KochEnabled())

	m.ti.SetValue("2")
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.iterMode)
	assert.True(t, m.Engine().KochEnabled())
	assert.Equal(t, 9, m.Engine().KochPoints())

	m = key(t, m, "+")
	assert.Equal(t, 3, m.Engine().KochIterations())
	m = key(t, m, "K")
	assert.False(t, m.Engine().KochEnabled())
}

func TestModelVertexTable(t *testing.T) {
	m := newModel(t)
	m = key(t, m, "a")
	assert.False(t, m.showAttrs, "empty polygon has no table")

	m = drawTriangle(t, m)
	m = key(t, m, "a")
	require.True(t, m.showAttrs)
	rows := m.tbl.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, config.ToHex(m.Engine().Colors()[0]), rows[0][3])

	m = key(t, m, "c")
	assert.False(t, m.showAttrs)
}

func TestModelBackground(t *testing.T) {
	m := newModel(t)
	m = key(t, m, "b")
	assert.Equal(t, m.ui.Color(), m.Engine().Background())
	m = key(t, m, "B")
	assert.Equal(t, m.cfg.BackgroundColor(), m.Engine().Background())
}
