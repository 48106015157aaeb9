package geom

// Point is a position in normalized device coordinates, conventionally
// in [-1, 1] on both axes with y pointing up.
type Point struct {
	X float64
	Y float64
}

// Color is an RGBA color with channels in [0, 1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

var (
	Black             = Color{0, 0, 0, 1}
	DefaultBackground = Color{0.8, 0.8, 0.8, 1}
)

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Bounds returns the bounding box of pts and false when pts is empty.
func Bounds(pts []Point) (BBox, bool) {
	if len(pts) == 0 {
		return BBox{}, false
	}
	bb := BBox{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < bb.MinX {
			bb.MinX = p.X
		}
		if p.Y < bb.MinY {
			bb.MinY = p.Y
		}
		if p.X > bb.MaxX {
			bb.MaxX = p.X
		}
		if p.Y > bb.MaxY {
			bb.MaxY = p.Y
		}
	}
	return bb, true
}

// Dist2 is the squared Euclidean distance between a and b.
func Dist2(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Near reports whether a and b are strictly closer than threshold.
func Near(a, b Point, threshold float64) bool {
	return Dist2(a, b) < threshold*threshold
}
