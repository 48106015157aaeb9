// Package poly holds the interactive polygon: the committed vertex, edge
// and color sequences and the Empty -> Building -> Closed life cycle.
package poly

import (
	"errors"
	"fmt"

	"polydraw/internal/geom"
)

// CloseThreshold is the distance in normalized device coordinates under
// which a click snaps onto the first vertex and closes the polygon.
const CloseThreshold = 0.05

// minCloseCount is the smallest vertex count, closing click included, at
// which auto closure can trigger.
const minCloseCount = 4

var (
	ErrClosed         = errors.New("poly: polygon is closed")
	ErrLengthMismatch = errors.New("poly: vertex and color counts differ")
)

type State int

const (
	Empty State = iota
	Building
	Closed
	// Loaded behaves like Closed but was installed from a saved scene.
	Loaded
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Building:
		return "building"
	case Closed:
		return "closed"
	case Loaded:
		return "loaded"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Polygon is the only writer of its sequences. vertices, edges and colors
// always have the same length.
type Polygon struct {
	vertices []geom.Point
	edges    []geom.Point
	colors   []geom.Color
	state    State
}

func New() *Polygon { return &Polygon{} }

// AddVertex commits p with color c. Once the polygon holds at least four
// points and p lands within CloseThreshold of the first vertex, p is
// replaced by an exact copy of that vertex and the polygon closes.
func (pg *Polygon) AddVertex(p geom.Point, c geom.Color) error {
	if pg.state == Closed || pg.state == Loaded {
		return ErrClosed
	}
	pg.vertices = append(pg.vertices, p)
	pg.edges = append(pg.edges, p)
	pg.colors = append(pg.colors, c)
	pg.state = Building

	n := len(pg.vertices)
	if n >= minCloseCount && geom.Near(pg.vertices[0], p, CloseThreshold) {
		first := pg.vertices[0]
		pg.vertices[n-1] = first
		pg.edges[n-1] = pg.edges[0]
		pg.state = Closed
	}
	return nil
}

// Clear empties the polygon. Calling it repeatedly is harmless.
func (pg *Polygon) Clear() {
	pg.vertices = nil
	pg.edges = nil
	pg.colors = nil
	pg.state = Empty
}

// Restore installs saved sequences verbatim, without closure snapping.
// More than two vertices yield a Loaded polygon; fewer leave it Building
// (or Empty). On error the polygon is left untouched.
func (pg *Polygon) Restore(vertices []geom.Point, colors []geom.Color) error {
	if len(vertices) != len(colors) {
		return fmt.Errorf("%w: %d vertices, %d colors", ErrLengthMismatch, len(vertices), len(colors))
	}
	pg.Clear()
	if len(vertices) == 0 {
		return nil
	}
	pg.vertices = append([]geom.Point(nil), vertices...)
	pg.edges = append([]geom.Point(nil), vertices...)
	pg.colors = append([]geom.Color(nil), colors...)
	if len(vertices) > 2 {
		pg.state = Loaded
	} else {
		pg.state = Building
	}
	return nil
}

func (pg *Polygon) Len() int     { return len(pg.vertices) }
func (pg *Polygon) State() State { return pg.state }

// IsClosed reports whether the polygon is a finished shape.
func (pg *Polygon) IsClosed() bool { return pg.state == Closed || pg.state == Loaded }

// Fillable reports whether a fan fill may be drawn for the polygon.
func (pg *Polygon) Fillable() bool {
	switch pg.state {
	case Closed:
		return true
	case Loaded:
		return len(pg.vertices) >= 3
	}
	return false
}

func (pg *Polygon) Vertices() []geom.Point { return append([]geom.Point(nil), pg.vertices...) }
func (pg *Polygon) Edges() []geom.Point    { return append([]geom.Point(nil), pg.edges...) }
func (pg *Polygon) Colors() []geom.Color   { return append([]geom.Color(nil), pg.colors...) }

// First returns vertex 0, the fan pivot.
func (pg *Polygon) First() (geom.Point, bool) {
	if len(pg.vertices) == 0 {
		return geom.Point{}, false
	}
	return pg.vertices[0], true
}

// Last returns the most recently committed vertex and its color.
func (pg *Polygon) Last() (geom.Point, geom.Color, bool) {
	n := len(pg.vertices)
	if n == 0 {
		return geom.Point{}, geom.Color{}, false
	}
	return pg.vertices[n-1], pg.colors[n-1], true
}
