package render

import (
	mt "github.com/rustyoz/Mtransform"

	"polydraw/internal/geom"
)

// Viewport maps normalized device coordinates onto a W x H pixel grid
// with y pointing down, and back.
type Viewport struct {
	W, H int

	toScreen mt.Transform
	toNDC    mt.Transform
}

func NewViewport(w, h int) Viewport {
	w, h = max(w, 1), max(h, 1)
	fw, fh := float64(w), float64(h)
	return Viewport{
		W: w,
		H: h,
		// x' = (x+1)/2 * w, y' = (1-y)/2 * h
		toScreen: mt.Transform{
			{fw / 2, 0, fw / 2},
			{0, -fh / 2, fh / 2},
			{0, 0, 1},
		},
		// x = 2x'/w - 1, y = 2(h-y')/h - 1
		toNDC: mt.Transform{
			{2 / fw, 0, -1},
			{0, -2 / fh, 1},
			{0, 0, 1},
		},
	}
}

// ToScreen returns the continuous pixel position of p.
func (v Viewport) ToScreen(p geom.Point) (float64, float64) {
	return v.toScreen.Apply(p.X, p.Y)
}

// ToPixel returns the pixel containing p.
func (v Viewport) ToPixel(p geom.Point) (int, int) {
	x, y := v.ToScreen(p)
	return floor(x), floor(y)
}

// ToNDC maps the center of pixel (x, y) back to device coordinates.
func (v Viewport) ToNDC(x, y int) geom.Point {
	nx, ny := v.toNDC.Apply(float64(x)+0.5, float64(y)+0.5)
	return geom.Point{X: nx, Y: ny}
}

func floor(f float64) int {
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i
}
