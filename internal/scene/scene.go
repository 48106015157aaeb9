// Package scene converts the committed drawing to and from its persisted
// JSON record.
package scene

import (
	"errors"
	"fmt"

	"polydraw/internal/geom"
)

var ErrInvalidRecord = errors.New("scene: invalid record")

// Record is the persisted form. Field names match the saved file.
type Record struct {
	VertexAmt        int          `json:"vertexAmt"`
	Coordinates      [][2]float64 `json:"coordinates"`
	Colors           [][4]float64 `json:"colors"`
	KochIterationAmt int          `json:"kochIterationAmt"`
	Background       [4]float64   `json:"background"`
}

// Scene is the decoded drawing.
type Scene struct {
	Vertices       []geom.Point
	Colors         []geom.Color
	KochIterations int
	Background     geom.Color
}

// Serialize builds the record for s.
func Serialize(s Scene) Record {
	r := Record{
		VertexAmt:        len(s.Vertices),
		Coordinates:      make([][2]float64, len(s.Vertices)),
		Colors:           make([][4]float64, len(s.Colors)),
		KochIterationAmt: s.KochIterations,
		Background:       colorTuple(s.Background),
	}
	for i, p := range s.Vertices {
		r.Coordinates[i] = [2]float64{p.X, p.Y}
	}
	for i, c := range s.Colors {
		r.Colors[i] = colorTuple(c)
	}
	return r
}

// Deserialize validates r and returns the scene it describes. Sequences
// are taken verbatim; closure is not re-evaluated.
func Deserialize(r Record) (Scene, error) {
	if err := r.Validate(); err != nil {
		return Scene{}, err
	}
	s := Scene{
		Vertices:       make([]geom.Point, r.VertexAmt),
		Colors:         make([]geom.Color, r.VertexAmt),
		KochIterations: r.KochIterationAmt,
		Background:     tupleColor(r.Background),
	}
	for i := 0; i < r.VertexAmt; i++ {
		s.Vertices[i] = geom.Point{X: r.Coordinates[i][0], Y: r.Coordinates[i][1]}
		s.Colors[i] = tupleColor(r.Colors[i])
	}
	return s, nil
}

// Validate checks the counts of r against its arrays.
func (r Record) Validate() error {
	if r.VertexAmt < 0 {
		return fmt.Errorf("%w: negative vertexAmt %d", ErrInvalidRecord, r.VertexAmt)
	}
	if r.KochIterationAmt < 0 {
		return fmt.Errorf("%w: negative kochIterationAmt %d", ErrInvalidRecord, r.KochIterationAmt)
	}
	if r.KochIterationAmt > geom.MaxIterations {
		return fmt.Errorf("%w: kochIterationAmt %d exceeds %d", ErrInvalidRecord, r.KochIterationAmt, geom.MaxIterations)
	}
	if len(r.Coordinates) != r.VertexAmt {
		return fmt.Errorf("%w: vertexAmt %d but %d coordinates", ErrInvalidRecord, r.VertexAmt, len(r.Coordinates))
	}
	if len(r.Colors) != r.VertexAmt {
		return fmt.Errorf("%w: vertexAmt %d but %d colors", ErrInvalidRecord, r.VertexAmt, len(r.Colors))
	}
	return nil
}

func colorTuple(c geom.Color) [4]float64 { return [4]float64{c.R, c.G, c.B, c.A} }
func tupleColor(t [4]float64) geom.Color { return geom.Color{R: t[0], G: t[1], B: t[2], A: t[3]} }
