// Package render draws one frame of the scene through a Rasterizer in a
// fixed order: background, Koch curve, outline, fill or preview.
package render

import (
	"errors"
	"fmt"
	"log/slog"

	"polydraw/internal/buffer"
	"polydraw/internal/geom"
	"polydraw/internal/poly"
)

// ErrAllocation reports that a rasterizer could not create storage for a
// batch. It only aborts that one primitive.
var ErrAllocation = errors.New("render: buffer allocation failed")

// Rasterizer is the drawing backend.
type Rasterizer interface {
	Clear(bg geom.Color)
	Draw(b buffer.Batch) error
}

// Frame is a read-only snapshot of what to draw.
type Frame struct {
	Background geom.Color

	Koch      []geom.Point
	KochColor geom.Color

	Edges    []geom.Point
	Vertices []geom.Point
	Colors   []geom.Color
	State    poly.State
	Fill     bool

	// Preview is drawn from the last committed vertex to Cursor.
	Cursor      geom.Point
	CursorColor geom.Color
}

// Layer names one primitive of a frame.
type Layer int

const (
	LayerKoch Layer = iota
	LayerOutline
	LayerFill
	LayerPreview
)

func (l Layer) String() string {
	switch l {
	case LayerKoch:
		return "koch"
	case LayerOutline:
		return "outline"
	case LayerFill:
		return "fill"
	case LayerPreview:
		return "preview"
	}
	return "unknown"
}

// Stats lists the layers drawn and the layers that failed in a frame.
type Stats struct {
	Drawn       []Layer
	Failed      []Layer
	ClearFailed bool
}

func (s Stats) Has(l Layer) bool {
	for _, d := range s.Drawn {
		if d == l {
			return true
		}
	}
	return false
}

type Orchestrator struct {
	Logger *slog.Logger
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Render draws f. A failing primitive is logged and skipped; later
// primitives of the same frame are still attempted. A panicking Clear is
// logged the same way and the primitives are drawn over whatever was left.
func (o *Orchestrator) Render(r Rasterizer, f Frame) Stats {
	var st Stats
	if err := safeClear(r, f.Background); err != nil {
		o.logger().Warn("clear failed", "error", err)
		st.ClearFailed = true
	}

	draw := func(l Layer, b buffer.Batch, err error) {
		if err == nil && b.Empty() {
			return
		}
		if err == nil {
			err = safeDraw(r, b)
		}
		if err != nil {
			o.logger().Warn("skipping primitive", "layer", l.String(), "primitive", b.Primitive.String(), "error", err)
			st.Failed = append(st.Failed, l)
			return
		}
		st.Drawn = append(st.Drawn, l)
	}

	if len(f.Koch) > 0 {
		draw(LayerKoch, buffer.PackUniform(buffer.LineStrip, f.Koch, f.KochColor), nil)
	}

	n := len(f.Vertices)
	if len(f.Edges) > 1 {
		b, err := buffer.Pack(buffer.LineStrip, f.Edges, f.Colors)
		draw(LayerOutline, b, err)
	}

	closed := f.State == poly.Closed || (f.State == poly.Loaded && n >= 3)
	switch {
	case closed && f.Fill:
		b, err := buffer.Pack(buffer.TriangleFan, f.Vertices, f.Colors)
		draw(LayerFill, b, err)
	case n > 0 && len(f.Colors) == n && f.State == poly.Building:
		draw(LayerPreview, buffer.PackPreview(f.Vertices[n-1], f.Colors[n-1], f.Cursor, f.CursorColor), nil)
	}
	return st
}

func safeClear(r Rasterizer, bg geom.Color) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("rasterizer panic: %v", p)
		}
	}()
	r.Clear(bg)
	return nil
}

// safeDraw turns a rasterizer panic into an error for that primitive.
func safeDraw(r Rasterizer, b buffer.Batch) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("rasterizer panic: %v", p)
		}
	}()
	return r.Draw(b)
}
