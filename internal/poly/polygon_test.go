package poly

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polydraw/internal/geom"
)

var (
	red   = geom.Color{R: 1, A: 1}
	green = geom.Color{G: 1, A: 1}
	blue  = geom.Color{B: 1, A: 1}
)

func triangle(t *testing.T) *Polygon {
	t.Helper()
	pg := New()
	require.NoError(t, pg.AddVertex(geom.Point{X: -0.5, Y: -0.5}, red))
	require.NoError(t, pg.AddVertex(geom.Point{X: 0.5, Y: -0.5}, green))
	require.NoError(t, pg.AddVertex(geom.Point{X: 0, Y: 0.5}, blue))
	return pg
}

func TestAddVertexBuilds(t *testing.T) {
	pg := New()
	assert.Equal(t, Empty, pg.State())
	require.NoError(t, pg.AddVertex(geom.Point{X: 0.1, Y: 0.2}, red))
	assert.Equal(t, Building, pg.State())
	assert.Equal(t, 1, pg.Len())
	assert.Equal(t, pg.Vertices(), pg.Edges())
	assert.Equal(t, []geom.Color{red}, pg.Colors())
}

func TestClosesAndSnaps(t *testing.T) {
	pg := triangle(t)
	require.NoError(t, pg.AddVertex(geom.Point{X: -0.49, Y: -0.49}, red))

	require.Equal(t, Closed, pg.State())
	require.Equal(t, 4, pg.Len())
	v, e := pg.Vertices(), pg.Edges()
	first := v[0]
	assert.Equal(t, math.Float64bits(first.X), math.Float64bits(v[3].X))
	assert.Equal(t, math.Float64bits(first.Y), math.Float64bits(v[3].Y))
	assert.Equal(t, math.Float64bits(first.X), math.Float64bits(e[3].X))
	assert.Equal(t, math.Float64bits(first.Y), math.Float64bits(e[3].Y))
	assert.Len(t, pg.Colors(), 4)
	assert.True(t, pg.Fillable())
}

func TestClosesJustInsideThreshold(t *testing.T) {
	pg := triangle(t)
	require.NoError(t, pg.AddVertex(geom.Point{X: -0.5 + 0.049, Y: -0.5}, red))
	assert.Equal(t, Closed, pg.State())
}

func TestDoesNotCloseOnFourthClickFarAway(t *testing.T) {
	pg := triangle(t)
	require.NoError(t, pg.AddVertex(geom.Point{X: 0.9, Y: 0.9}, red))
	assert.Equal(t, Building, pg.State())
	assert.Equal(t, 4, pg.Len())
}

func TestNoClosureBeforeFourPoints(t *testing.T) {
	pg := New()
	require.NoError(t, pg.AddVertex(geom.Point{X: -0.5, Y: -0.5}, red))
	require.NoError(t, pg.AddVertex(geom.Point{X: 0.5, Y: -0.5}, red))
	require.NoError(t, pg.AddVertex(geom.Point{X: -0.5, Y: -0.49}, red))
	assert.Equal(t, Building, pg.State())
	assert.False(t, pg.Fillable())
}

func TestAddVertexAfterClose(t *testing.T) {
	pg := triangle(t)
	require.NoError(t, pg.AddVertex(geom.Point{X: -0.5, Y: -0.5}, red))
	err := pg.AddVertex(geom.Point{}, red)
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 4, pg.Len())
}

func TestClearIdempotent(t *testing.T) {
	pg := triangle(t)
	pg.Clear()
	once := *pg
	pg.Clear()
	assert.Equal(t, once, *pg)
	assert.Equal(t, Empty, pg.State())
	assert.Zero(t, pg.Len())
	_, ok := pg.First()
	assert.False(t, ok)
	_, _, ok = pg.Last()
	assert.False(t, ok)
}

func TestRestore(t *testing.T) {
	verts := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	cols := []geom.Color{red, green, blue, red}

	pg := New()
	require.NoError(t, pg.Restore(verts, cols))
	assert.Equal(t, Loaded, pg.State())
	assert.True(t, pg.IsClosed())
	assert.True(t, pg.Fillable())
	assert.Equal(t, verts, pg.Vertices())
	assert.Equal(t, verts, pg.Edges())
	assert.Equal(t, cols, pg.Colors())

	assert.ErrorIs(t, pg.AddVertex(geom.Point{}, red), ErrClosed)
}

func TestRestoreShort(t *testing.T) {
	pg := New()
	require.NoError(t, pg.Restore([]geom.Point{{X: 0.3, Y: 0.3}}, []geom.Color{red}))
	assert.Equal(t, Building, pg.State())
	assert.False(t, pg.Fillable())

	require.NoError(t, pg.Restore(nil, nil))
	assert.Equal(t, Empty, pg.State())
}

func TestRestoreMismatchLeavesPolygon(t *testing.T) {
	pg := triangle(t)
	err := pg.Restore([]geom.Point{{}, {}}, []geom.Color{red})
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Equal(t, 3, pg.Len())
	assert.Equal(t, Building, pg.State())
}

func TestRestoreDoesNotSnap(t *testing.T) {
	verts := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0.01, Y: 0.01}}
	pg := New()
	require.NoError(t, pg.Restore(verts, []geom.Color{red, red, red, red}))
	assert.Equal(t, geom.Point{X: 0.01, Y: 0.01}, pg.Vertices()[3])
}

func TestAccessorsReturnCopies(t *testing.T) {
	pg := triangle(t)
	v := pg.Vertices()
	v[0] = geom.Point{X: 9, Y: 9}
	first, _ := pg.First()
	assert.Equal(t, geom.Point{X: -0.5, Y: -0.5}, first)
}

func TestLast(t *testing.T) {
	pg := triangle(t)
	p, c, ok := pg.Last()
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 0, Y: 0.5}, p)
	assert.Equal(t, blue, c)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "State(9)", State(9).String())
}
