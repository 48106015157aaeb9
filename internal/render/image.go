package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"polydraw/internal/buffer"
	"polydraw/internal/geom"
)

// ImageRasterizer renders frames into an RGBA image using
// golang.org/x/image/vector. Lines are stroked as quads of LineWidth
// pixels; outlines change color at every vertex.
type ImageRasterizer struct {
	LineWidth float64

	img *image.RGBA
	vp  Viewport
	r   *vector.Rasterizer
}

func NewImageRasterizer(w, h int) *ImageRasterizer {
	vp := NewViewport(w, h)
	return &ImageRasterizer{
		LineWidth: 1.5,
		img:       image.NewRGBA(image.Rect(0, 0, vp.W, vp.H)),
		vp:        vp,
		r:         vector.NewRasterizer(vp.W, vp.H),
	}
}

func (ir *ImageRasterizer) Image() *image.RGBA { return ir.img }

// WritePNG encodes the current frame.
func (ir *ImageRasterizer) WritePNG(w io.Writer) error {
	return png.Encode(w, ir.img)
}

func (ir *ImageRasterizer) Clear(bg geom.Color) {
	draw.Draw(ir.img, ir.img.Bounds(), image.NewUniform(toNRGBA(bg)), image.Point{}, draw.Src)
}

func (ir *ImageRasterizer) Draw(b buffer.Batch) error {
	switch b.Primitive {
	case buffer.LineStrip:
		ir.strokeRuns(b, 1)
	case buffer.Lines:
		ir.strokeRuns(b, 2)
	case buffer.TriangleFan:
		if b.Count < 3 {
			return nil
		}
		ir.begin()
		for i := 0; i < b.Count; i++ {
			p, _ := b.At(i)
			x, y := ir.vp.ToScreen(p)
			if i == 0 {
				ir.r.MoveTo(float32(x), float32(y))
			} else {
				ir.r.LineTo(float32(x), float32(y))
			}
		}
		ir.r.ClosePath()
		ir.flush(averageColor(b))
	case buffer.Triangles:
		for i := 0; i+2 < b.Count; i += 3 {
			ir.begin()
			var avg geom.Color
			for j := 0; j < 3; j++ {
				p, c := b.At(i + j)
				x, y := ir.vp.ToScreen(p)
				if j == 0 {
					ir.r.MoveTo(float32(x), float32(y))
				} else {
					ir.r.LineTo(float32(x), float32(y))
				}
				avg = addColor(avg, c, 1.0/3)
			}
			ir.r.ClosePath()
			ir.flush(avg)
		}
	default:
		return fmt.Errorf("render: unsupported primitive %s", b.Primitive)
	}
	return nil
}

// strokeRuns strokes segments (i, i+1) for i advancing by step, batching
// consecutive segments of equal start color into one rasterizer pass.
func (ir *ImageRasterizer) strokeRuns(b buffer.Batch, step int) {
	open := false
	var runColor geom.Color
	for i := 0; i+1 < b.Count; i += step {
		a, c := b.At(i)
		e, _ := b.At(i + 1)
		if open && c != runColor {
			ir.flush(runColor)
			open = false
		}
		if !open {
			ir.begin()
			runColor = c
			open = true
		}
		ir.quad(a, e)
	}
	if open {
		ir.flush(runColor)
	}
}

func (ir *ImageRasterizer) begin() {
	ir.r.Reset(ir.vp.W, ir.vp.H)
}

func (ir *ImageRasterizer) flush(c geom.Color) {
	ir.r.Draw(ir.img, ir.img.Bounds(), image.NewUniform(toNRGBA(c)), image.Point{})
}

// quad adds the stroke of segment a-b as a rectangle around it.
func (ir *ImageRasterizer) quad(a, b geom.Point) {
	x0, y0 := ir.vp.ToScreen(a)
	x1, y1 := ir.vp.ToScreen(b)
	half := ir.LineWidth / 2
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		dx, dy, l = 1, 0, 1
	}
	// unit direction scaled to half width, and its normal
	ux, uy := dx/l*half, dy/l*half
	nx, ny := -uy, ux
	ir.r.MoveTo(float32(x0-ux+nx), float32(y0-uy+ny))
	ir.r.LineTo(float32(x1+ux+nx), float32(y1+uy+ny))
	ir.r.LineTo(float32(x1+ux-nx), float32(y1+uy-ny))
	ir.r.LineTo(float32(x0-ux-nx), float32(y0-uy-ny))
	ir.r.ClosePath()
}

func averageColor(b buffer.Batch) geom.Color {
	var avg geom.Color
	if b.Count == 0 {
		return avg
	}
	w := 1 / float64(b.Count)
	for i := 0; i < b.Count; i++ {
		_, c := b.At(i)
		avg = addColor(avg, c, w)
	}
	return avg
}

func addColor(acc, c geom.Color, w float64) geom.Color {
	return geom.Color{R: acc.R + c.R*w, G: acc.G + c.G*w, B: acc.B + c.B*w, A: acc.A + c.A*w}
}

func toNRGBA(c geom.Color) color.NRGBA {
	ch := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.NRGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: ch(c.A)}
}
