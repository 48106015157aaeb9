// Package engine ties the polygon state machine, the Koch generator and
// the render pass together behind the input handlers a front end calls.
//
// Every handler that changes what is visible finishes by rendering a full
// frame, so a caller never observes state that has not been drawn. The
// engine is not safe for concurrent use; all calls are expected from one
// event loop.
package engine

import (
	"fmt"

	"polydraw/internal/geom"
	"polydraw/internal/poly"
	"polydraw/internal/render"
	"polydraw/internal/scene"
)

// UI supplies the current picker color and the requested Koch depth.
type UI interface {
	Color() geom.Color
	Iterations() int
}

// Cursor is the transient pointer state used for the preview segment.
type Cursor struct {
	Pos   geom.Point
	Color geom.Color
}

type Options struct {
	Background geom.Color
	KochColor  geom.Color
}

func DefaultOptions() Options {
	return Options{Background: geom.DefaultBackground, KochColor: geom.Black}
}

type Engine struct {
	ui     UI
	raster render.Rasterizer
	orch   render.Orchestrator

	poly   *poly.Polygon
	cursor Cursor
	fill   bool

	koch           bool
	kochIterations int
	kochPoints     []geom.Point
	// kochLoaded marks a curve installed by OnLoad, which the next click
	// discards together with the loaded polygon.
	kochLoaded bool

	background geom.Color
	kochColor  geom.Color

	stats render.Stats
}

// New returns an engine with an empty polygon. r may be nil until a
// surface exists; frames are skipped meanwhile.
func New(ui UI, r render.Rasterizer, opts Options) *Engine {
	return &Engine{
		ui:         ui,
		raster:     r,
		poly:       poly.New(),
		background: opts.Background,
		kochColor:  opts.KochColor,
	}
}

// SetRasterizer swaps the drawing surface and redraws onto it.
func (e *Engine) SetRasterizer(r render.Rasterizer) {
	e.raster = r
	e.RenderFrame()
}

// OnPointerDown commits a vertex at p with the current UI color. A click
// on a closed polygon clears it; a click on a loaded scene discards the
// scene and starts a new polygon at p.
func (e *Engine) OnPointerDown(p geom.Point) {
	if e.poly.State() == poly.Loaded || e.kochLoaded {
		Logger().Debug("discarding loaded scene", "state", e.poly.State().String(), "koch", e.kochLoaded)
		if e.poly.State() == poly.Loaded {
			e.poly.Clear()
		}
		if e.kochLoaded {
			e.disableKoch()
		}
	}
	if e.poly.State() == poly.Closed {
		Logger().Debug("clearing closed polygon", "vertices", e.poly.Len())
		e.poly.Clear()
		e.RenderFrame()
		return
	}
	c := e.ui.Color()
	if err := e.poly.AddVertex(p, c); err != nil {
		Logger().Debug("vertex rejected", "error", err)
		return
	}
	e.cursor = Cursor{Pos: p, Color: c}
	if e.poly.State() == poly.Closed {
		Logger().Debug("polygon closed", "vertices", e.poly.Len())
	}
	e.RenderFrame()
}

// OnPointerMove tracks the cursor for the preview segment. Nothing is
// redrawn until at least one vertex exists.
func (e *Engine) OnPointerMove(p geom.Point) {
	e.cursor = Cursor{Pos: p, Color: e.ui.Color()}
	if e.poly.Len() > 0 {
		e.RenderFrame()
	}
}

func (e *Engine) OnToggleFill() {
	e.fill = !e.fill
	e.RenderFrame()
}

// OnRequestKoch enables the curve at the UI's iteration count. A count
// outside 1..geom.MaxIterations leaves the current state alone.
func (e *Engine) OnRequestKoch() {
	n := e.ui.Iterations()
	if n <= 0 || n > geom.MaxIterations {
		Logger().Debug("ignoring koch request", "iterations", n)
		return
	}
	e.setKoch(n)
	e.kochLoaded = false
	e.RenderFrame()
}

func (e *Engine) OnClearKoch() {
	e.disableKoch()
	e.RenderFrame()
}

// OnClear empties the polygon.
func (e *Engine) OnClear() {
	e.poly.Clear()
	e.RenderFrame()
}

// OnBackground changes the clear color.
func (e *Engine) OnBackground(c geom.Color) {
	e.background = c
	e.RenderFrame()
}

// OnSave returns the record of the committed drawing. The Koch count is
// saved only while the curve is shown.
func (e *Engine) OnSave() scene.Record {
	k := 0
	if e.koch {
		k = e.kochIterations
	}
	r := scene.Serialize(scene.Scene{
		Vertices:       e.poly.Vertices(),
		Colors:         e.poly.Colors(),
		KochIterations: k,
		Background:     e.background,
	})
	Logger().Info("scene saved", "vertices", r.VertexAmt, "koch", r.KochIterationAmt)
	return r
}

// OnLoad replaces the drawing with r. An invalid record is rejected
// before anything changes. A polygon is rebuilt only from more than two
// vertices; shorter records leave it empty.
func (e *Engine) OnLoad(r scene.Record) error {
	s, err := scene.Deserialize(r)
	if err != nil {
		return err
	}
	e.poly.Clear()
	if len(s.Vertices) > 2 {
		if err := e.poly.Restore(s.Vertices, s.Colors); err != nil {
			return err
		}
	}
	if s.KochIterations == 0 {
		e.disableKoch()
	} else {
		e.setKoch(s.KochIterations)
		e.kochLoaded = true
	}
	e.background = s.Background
	e.cursor = Cursor{}
	attrs := []any{"vertices", len(s.Vertices), "state", e.poly.State().String(), "koch", s.KochIterations}
	if bb, ok := geom.Bounds(s.Vertices); ok {
		attrs = append(attrs, "bbox", fmt.Sprintf("[%.3f %.3f %.3f %.3f]", bb.MinX, bb.MinY, bb.MaxX, bb.MaxY))
	}
	Logger().Info("scene loaded", attrs...)
	e.RenderFrame()
	return nil
}

// RenderFrame draws the current state.
func (e *Engine) RenderFrame() {
	if e.raster == nil {
		return
	}
	e.orch.Logger = Logger()
	e.stats = e.orch.Render(e.raster, e.Frame())
}

// Frame returns the snapshot the next render would draw.
func (e *Engine) Frame() render.Frame {
	f := render.Frame{
		Background:  e.background,
		KochColor:   e.kochColor,
		Edges:       e.poly.Edges(),
		Vertices:    e.poly.Vertices(),
		Colors:      e.poly.Colors(),
		State:       e.poly.State(),
		Fill:        e.fill,
		Cursor:      e.cursor.Pos,
		CursorColor: e.cursor.Color,
	}
	if e.koch {
		f.Koch = e.kochPoints
	}
	return f
}

func (e *Engine) setKoch(n int) {
	if n != e.kochIterations || e.kochPoints == nil {
		e.kochPoints = geom.Koch(n)
	}
	e.koch = true
	e.kochIterations = n
}

func (e *Engine) disableKoch() {
	e.koch = false
	e.kochLoaded = false
}

func (e *Engine) State() poly.State             { return e.poly.State() }
func (e *Engine) Len() int                      { return e.poly.Len() }
func (e *Engine) Vertices() []geom.Point        { return e.poly.Vertices() }
func (e *Engine) Colors() []geom.Color          { return e.poly.Colors() }
func (e *Engine) FillEnabled() bool             { return e.fill }
func (e *Engine) KochEnabled() bool             { return e.koch }
func (e *Engine) KochIterations() int           { return e.kochIterations }
func (e *Engine) KochPoints() int               { return len(e.kochPoints) }
func (e *Engine) Background() geom.Color        { return e.background }
func (e *Engine) Cursor() Cursor                { return e.cursor }
func (e *Engine) LastStats() render.Stats       { return e.stats }
func (e *Engine) Rasterizer() render.Rasterizer { return e.raster }
