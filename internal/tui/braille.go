package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"polydraw/internal/buffer"
	"polydraw/internal/config"
	"polydraw/internal/geom"
	"polydraw/internal/render"
)

// canvas is a render.Rasterizer backed by braille cells: every terminal
// cell holds a 2x4 grid of micro pixels and one foreground color, the
// color of the last primitive that touched it.
type canvas struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	fg   [][]geom.Color
	bg   geom.Color
	vp   render.Viewport
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 1), max(h, 1)
	c := &canvas{w: w, h: h, vp: render.NewViewport(w*2, h*4)}
	c.m = make([][]uint8, h)
	c.fg = make([][]geom.Color, h)
	for i := range c.m {
		c.m[i] = make([]uint8, w)
		c.fg[i] = make([]geom.Color, w)
	}
	return c
}

func (c *canvas) Clear(bg geom.Color) {
	c.bg = bg
	for y := range c.m {
		clear(c.m[y])
		clear(c.fg[y])
	}
}

func (c *canvas) Draw(b buffer.Batch) error {
	switch b.Primitive {
	case buffer.LineStrip:
		c.strokeSegments(b, 1)
	case buffer.Lines:
		c.strokeSegments(b, 2)
	case buffer.TriangleFan:
		if b.Count < 3 {
			return nil
		}
		pts := make([][2]int, b.Count)
		var acc [4]float64
		for i := range pts {
			p, col := b.At(i)
			pts[i][0], pts[i][1] = c.vp.ToPixel(p)
			acc[0], acc[1], acc[2], acc[3] = acc[0]+col.R, acc[1]+col.G, acc[2]+col.B, acc[3]+col.A
		}
		n := float64(b.Count)
		c.fillRing(pts, geom.Color{R: acc[0] / n, G: acc[1] / n, B: acc[2] / n, A: acc[3] / n})
	case buffer.Triangles:
		for i := 0; i+2 < b.Count; i += 3 {
			var tri [][2]int
			for j := 0; j < 3; j++ {
				p, _ := b.At(i + j)
				x, y := c.vp.ToPixel(p)
				tri = append(tri, [2]int{x, y})
			}
			_, col := b.At(i)
			c.fillRing(tri, col)
		}
	default:
		return fmt.Errorf("tui: unsupported primitive %s", b.Primitive)
	}
	return nil
}

// strokeSegments draws (i, i+1) for i advancing by step, each in the color
// of its first vertex.
func (c *canvas) strokeSegments(b buffer.Batch, step int) {
	if b.Count == 1 {
		p, col := b.At(0)
		x, y := c.vp.ToPixel(p)
		c.setPixel(x, y, col)
		return
	}
	for i := 0; i+1 < b.Count; i += step {
		p0, col := b.At(i)
		p1, _ := b.At(i + 1)
		x0, y0 := c.vp.ToPixel(p0)
		x1, y1 := c.vp.ToPixel(p1)
		c.drawLineMicro(x0, y0, x1, y1, col)
	}
}

// fillRing fills a closed ring using the even-odd rule per micro scanline.
func (c *canvas) fillRing(ring [][2]int, col geom.Color) {
	hMic := c.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
				c.setPixel(xMic, yMic, col)
			}
		}
	}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (c *canvas) setPixel(mx, my int, col geom.Color) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= c.h || cx >= c.w {
		return
	}
	c.m[cy][cx] |= brailleBits[rx][ry]
	c.fg[cy][cx] = col
}

var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (c *canvas) drawLineMicro(x0, y0, x1, y1 int, col geom.Color) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.setPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// cellOf returns the cell holding p.
func (c *canvas) cellOf(p geom.Point) (int, int) {
	x, y := c.vp.ToPixel(p)
	return x / 2, y / 4
}

// pointAt maps a cell back to the canvas coordinate of its center.
func (c *canvas) pointAt(cx, cy int) geom.Point {
	return c.vp.ToNDC(cx*2+1, cy*4+2)
}

type mark struct {
	x, y int
	on   bool
}

// toLines renders the canvas with runs of equally colored cells grouped
// into one lipgloss style. A mark, if set, replaces its cell with a ring.
func (c *canvas) toLines(mk mark) []string {
	bg := lipgloss.Color(config.ToHex(c.bg))
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var sb strings.Builder
		var run []rune
		runFg := ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			st := lipgloss.NewStyle().Background(bg)
			if runFg != "" {
				st = st.Foreground(lipgloss.Color(runFg))
			}
			sb.WriteString(st.Render(string(run)))
			run, runFg = run[:0], ""
		}
		for x := 0; x < c.w; x++ {
			r, fg := ' ', ""
			if mask := c.m[y][x]; mask != 0 {
				r, fg = rune(0x2800+int(mask)), config.ToHex(c.fg[y][x])
			}
			if mk.on && mk.x == x && mk.y == y {
				r, fg = '◯', "#FFA500"
			}
			if r != ' ' {
				if runFg != "" && runFg != fg {
					flush()
				}
				runFg = fg
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

// plain renders the masks without styling.
func (c *canvas) plain() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		row := make([]rune, c.w)
		for x := 0; x < c.w; x++ {
			if mask := c.m[y][x]; mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}
