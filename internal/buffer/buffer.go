// Package buffer packs point and color sequences into flat float32 arrays
// laid out for upload as vertex storage.
package buffer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"

	"polydraw/internal/geom"
)

const (
	positionComponents = 2
	colorComponents    = 4

	positionStride = positionComponents * 4
	colorStride    = colorComponents * 4
)

var ErrLengthMismatch = errors.New("buffer: point and color counts differ")

// Primitive is the draw interpretation of a packed batch.
type Primitive int

const (
	LineStrip Primitive = iota
	TriangleFan
	Lines
	// Triangles is an explicit triangle list, produced by FanTriangles.
	Triangles
)

func (p Primitive) String() string {
	switch p {
	case LineStrip:
		return "LINE_STRIP"
	case TriangleFan:
		return "TRIANGLE_FAN"
	case Lines:
		return "LINES"
	case Triangles:
		return "TRIANGLES"
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// Topology maps p onto a WebGPU primitive topology. Fans have no native
// topology; ok is false and the batch must be expanded with FanTriangles.
func (p Primitive) Topology() (t gputypes.PrimitiveTopology, ok bool) {
	switch p {
	case LineStrip:
		return gputypes.PrimitiveTopologyLineStrip, true
	case Lines:
		return gputypes.PrimitiveTopologyLineList, true
	case Triangles:
		return gputypes.PrimitiveTopologyTriangleList, true
	}
	return gputypes.PrimitiveTopologyTriangleList, false
}

// Batch is a packed draw. Index i of Positions (2 floats per point) and
// Colors (4 floats per point) always holds logical element i.
type Batch struct {
	Primitive Primitive
	Positions []float32
	Colors    []float32
	Count     int
}

// Empty reports that there is nothing to draw.
func (b Batch) Empty() bool { return b.Count == 0 }

// Pack lays out points and their parallel colors. An empty input yields
// an empty batch without any storage.
func Pack(kind Primitive, points []geom.Point, colors []geom.Color) (Batch, error) {
	if len(points) != len(colors) {
		return Batch{}, fmt.Errorf("%w: %d points, %d colors", ErrLengthMismatch, len(points), len(colors))
	}
	b := Batch{Primitive: kind}
	if len(points) == 0 {
		return b, nil
	}
	b.alloc(len(points))
	for i := range points {
		b.set(i, points[i], colors[i])
	}
	return b, nil
}

// PackUniform packs points with a single shared color.
func PackUniform(kind Primitive, points []geom.Point, c geom.Color) Batch {
	b := Batch{Primitive: kind}
	if len(points) == 0 {
		return b
	}
	b.alloc(len(points))
	for i, p := range points {
		b.set(i, p, c)
	}
	return b
}

// PackPreview packs the two-point segment from the last committed vertex
// to the live cursor.
func PackPreview(pivot geom.Point, pivotColor geom.Color, tip geom.Point, tipColor geom.Color) Batch {
	b := Batch{Primitive: Lines}
	b.alloc(2)
	b.set(0, pivot, pivotColor)
	b.set(1, tip, tipColor)
	return b
}

func (b *Batch) alloc(n int) {
	b.Count = n
	b.Positions = make([]float32, n*positionComponents)
	b.Colors = make([]float32, n*colorComponents)
}

func (b *Batch) set(i int, p geom.Point, c geom.Color) {
	pos := b.Positions[i*positionComponents:]
	pos[0] = float32(p.X)
	pos[1] = float32(p.Y)
	col := b.Colors[i*colorComponents:]
	col[0] = float32(c.R)
	col[1] = float32(c.G)
	col[2] = float32(c.B)
	col[3] = float32(c.A)
}

// At reads back element i.
func (b Batch) At(i int) (geom.Point, geom.Color) {
	pos := b.Positions[i*positionComponents:]
	col := b.Colors[i*colorComponents:]
	return geom.Point{X: float64(pos[0]), Y: float64(pos[1])},
		geom.Color{R: float64(col[0]), G: float64(col[1]), B: float64(col[2]), A: float64(col[3])}
}

// FanTriangles expands a fan around element 0 into an explicit triangle
// list: (0, i, i+1) for every i. Other primitives are returned unchanged.
func (b Batch) FanTriangles() Batch {
	if b.Primitive != TriangleFan {
		return b
	}
	out := Batch{Primitive: Triangles}
	if b.Count < 3 {
		return out
	}
	out.alloc((b.Count - 2) * 3)
	k := 0
	for i := 1; i+1 < b.Count; i++ {
		for _, j := range [3]int{0, i, i + 1} {
			p, c := b.At(j)
			out.set(k, p, c)
			k++
		}
	}
	return out
}

// PositionBytes returns the positions as little-endian float32 bytes.
func (b Batch) PositionBytes() []byte { return floatBytes(b.Positions) }

// ColorBytes returns the colors as little-endian float32 bytes.
func (b Batch) ColorBytes() []byte { return floatBytes(b.Colors) }

func floatBytes(fs []float32) []byte {
	if len(fs) == 0 {
		return nil
	}
	buf := make([]byte, len(fs)*4)
	for i, f := range fs {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// Layouts describes the two vertex buffers a batch uploads to: positions
// at shader location 0 and colors at location 1.
func Layouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: positionStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		},
		{
			ArrayStride: colorStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 1},
			},
		},
	}
}
