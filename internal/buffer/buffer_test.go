package buffer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polydraw/internal/geom"
)

var (
	p0 = geom.Point{X: -0.5, Y: -0.5}
	p1 = geom.Point{X: 0.5, Y: -0.5}
	p2 = geom.Point{X: 0, Y: 0.5}
	c0 = geom.Color{R: 1, A: 1}
	c1 = geom.Color{G: 1, A: 1}
	c2 = geom.Color{B: 1, A: 0.5}
)

func TestPackIndexStable(t *testing.T) {
	b, err := Pack(LineStrip, []geom.Point{p0, p1, p2}, []geom.Color{c0, c1, c2})
	require.NoError(t, err)
	require.Equal(t, 3, b.Count)
	require.Len(t, b.Positions, 6)
	require.Len(t, b.Colors, 12)

	p, c := b.At(1)
	assert.Equal(t, p1, p)
	assert.Equal(t, c1, c)
	assert.Equal(t, []float32{-0.5, -0.5, 0.5, -0.5, 0, 0.5}, b.Positions)
	assert.Equal(t, []float32{0, 0, 1, 0.5}, b.Colors[8:])
}

func TestPackEmpty(t *testing.T) {
	b, err := Pack(TriangleFan, nil, nil)
	require.NoError(t, err)
	assert.True(t, b.Empty())
	assert.Nil(t, b.Positions)
	assert.Nil(t, b.Colors)
	assert.Nil(t, b.PositionBytes())

	u := PackUniform(LineStrip, nil, geom.Black)
	assert.True(t, u.Empty())
}

func TestPackMismatch(t *testing.T) {
	_, err := Pack(LineStrip, []geom.Point{p0, p1}, []geom.Color{c0})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestPackUniform(t *testing.T) {
	b := PackUniform(LineStrip, geom.Koch(2), geom.Black)
	require.Equal(t, 9, b.Count)
	for i := 0; i < b.Count; i++ {
		_, c := b.At(i)
		assert.Equal(t, geom.Black, c)
	}
}

func TestPackPreview(t *testing.T) {
	b := PackPreview(p0, c0, p2, c2)
	assert.Equal(t, Lines, b.Primitive)
	require.Equal(t, 2, b.Count)
	p, c := b.At(0)
	assert.Equal(t, p0, p)
	assert.Equal(t, c0, c)
	p, c = b.At(1)
	assert.Equal(t, p2, p)
	assert.Equal(t, c2, c)
}

func TestFanTriangles(t *testing.T) {
	p3 := p0
	fan, err := Pack(TriangleFan, []geom.Point{p0, p1, p2, p3}, []geom.Color{c0, c1, c2, c0})
	require.NoError(t, err)

	tris := fan.FanTriangles()
	assert.Equal(t, Triangles, tris.Primitive)
	require.Equal(t, 6, tris.Count)
	want := []geom.Point{p0, p1, p2, p0, p2, p3}
	for i, w := range want {
		p, _ := tris.At(i)
		assert.Equal(t, w, p, "vertex %d", i)
	}

	short, _ := Pack(TriangleFan, []geom.Point{p0, p1}, []geom.Color{c0, c1})
	assert.True(t, short.FanTriangles().Empty())

	strip, _ := Pack(LineStrip, []geom.Point{p0, p1}, []geom.Color{c0, c1})
	assert.Equal(t, strip, strip.FanTriangles())
}

func TestBytesLittleEndian(t *testing.T) {
	b, err := Pack(LineStrip, []geom.Point{p0, p1}, []geom.Color{c0, c1})
	require.NoError(t, err)
	pos := b.PositionBytes()
	require.Len(t, pos, 2*positionStride)
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(pos[8:])))
	col := b.ColorBytes()
	require.Len(t, col, 2*colorStride)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(col[colorStride+4:])))
}

func TestTopology(t *testing.T) {
	tests := []struct {
		p    Primitive
		want gputypes.PrimitiveTopology
		ok   bool
	}{
		{LineStrip, gputypes.PrimitiveTopologyLineStrip, true},
		{Lines, gputypes.PrimitiveTopologyLineList, true},
		{Triangles, gputypes.PrimitiveTopologyTriangleList, true},
		{TriangleFan, gputypes.PrimitiveTopologyTriangleList, false},
	}
	for _, tt := range tests {
		got, ok := tt.p.Topology()
		assert.Equal(t, tt.ok, ok, "%v", tt.p)
		assert.Equal(t, tt.want, got, "%v", tt.p)
	}
}

func TestLayouts(t *testing.T) {
	l := Layouts()
	require.Len(t, l, 2)
	assert.EqualValues(t, 8, l[0].ArrayStride)
	assert.Equal(t, gputypes.VertexFormatFloat32x2, l[0].Attributes[0].Format)
	assert.EqualValues(t, 16, l[1].ArrayStride)
	assert.Equal(t, gputypes.VertexFormatFloat32x4, l[1].Attributes[0].Format)
	assert.EqualValues(t, 1, l[1].Attributes[0].ShaderLocation)
}

func TestPrimitiveString(t *testing.T) {
	assert.Equal(t, "TRIANGLE_FAN", TriangleFan.String())
	assert.Equal(t, "Primitive(7)", Primitive(7).String())
}
