package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"

	"polydraw/internal/config"
	"polydraw/internal/engine"
	"polydraw/internal/geom"
)

// picker is the engine's view of the UI controls. It is shared by pointer
// so the engine sees changes made by later copies of the Model.
type picker struct {
	hue, sat, val float64
	iterations    int
}

func newPicker(c geom.Color, iterations int) *picker {
	h, s, v := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsv()
	if s == 0 {
		s = 1
	}
	if v == 0 {
		v = 1
	}
	return &picker{hue: h, sat: s, val: v, iterations: iterations}
}

func (p *picker) Color() geom.Color { return config.FromColorful(colorful.Hsv(p.hue, p.sat, p.val)) }
func (p *picker) Iterations() int   { return p.iterations }

// shiftHue rotates the hue by deg, wrapping around the color wheel.
func (p *picker) shiftHue(deg float64) {
	p.hue += deg
	for p.hue < 0 {
		p.hue += 360
	}
	for p.hue >= 360 {
		p.hue -= 360
	}
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string
	cfg    config.Config

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Drawing
	eng *engine.Engine
	ui  *picker
	cv  *canvas

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// iteration prompt
	iterMode bool
	ti       textinput.Model

	// hover state, in canvas cells
	hovering   bool
	hoverCellX int
	hoverCellY int
	hoverPos   geom.Point

	// vertex table
	showAttrs bool
	tbl       table.Model
}

func New(cfg config.Config) Model {
	m := Model{
		helpVisible: true,
		status:      "polydraw ready",
		cfg:         cfg,
		ui:          newPicker(cfg.PickerColor(), cfg.DefaultIterations),
	}
	m.cwd = cfg.SceneDir
	if m.cwd == "" || m.cwd == "." {
		m.cwd, _ = os.Getwd()
	}
	m.cv = newCanvas(80, 24)
	m.eng = engine.New(m.ui, m.cv, engine.Options{
		Background: cfg.BackgroundColor(),
		KochColor:  cfg.KochLineColor(),
	})
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Scenes"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste scene JSON here. Press Enter to load; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// iteration prompt
	m.ti = textinput.New()
	m.ti.Placeholder = "iterations"
	m.ti.CharLimit = 2
	m.ti.Width = 4
	m.tbl = table.New(table.WithFocused(true), table.WithColumns(vertexColumns))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a scene file at launch.
func NewWithPath(cfg config.Config, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Engine exposes the drawing engine, mainly for tests.
func (m Model) Engine() *engine.Engine { return m.eng }

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	sidebarW      int
	contentW      int
	contentH      int
	mapX, mapY    int
	mapW, mapH    int
	headerH, foot int
}

func (m Model) layout() layout {
	lo := layout{headerH: 1, foot: 2}
	if m.showSidebar {
		lo.sidebarW = 28
	}
	lo.contentH = max(4, m.height-lo.headerH-lo.foot)
	lo.contentW = max(10, m.width)
	lo.mapW = max(10, lo.contentW-lo.sidebarW-1)
	lo.mapH = lo.contentH
	if m.showSidebar {
		lo.mapX = lo.sidebarW + 1
	}
	lo.mapY = lo.headerH
	return lo
}

// resize swaps in a canvas matching the map area and redraws onto it.
func (m *Model) resize() {
	lo := m.layout()
	if m.showSidebar {
		m.l.SetSize(lo.sidebarW-2, lo.contentH-2)
	}
	if m.cv.w == lo.mapW && m.cv.h == lo.mapH {
		return
	}
	m.cv = newCanvas(lo.mapW, lo.mapH)
	m.eng.SetRasterizer(m.cv)
}
