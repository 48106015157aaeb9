package geom

// Direction is the axis-aligned heading of a segment.
type Direction int

const (
	Right Direction = iota
	Left
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// unit returns the unit vector of travel and its left normal.
func (d Direction) unit() (f, n Point) {
	switch d {
	case Right:
		return Point{1, 0}, Point{0, 1}
	case Left:
		return Point{-1, 0}, Point{0, -1}
	case Up:
		return Point{0, 1}, Point{-1, 0}
	default:
		return Point{0, -1}, Point{1, 0}
	}
}

// classify returns the heading from a to b. ok is false for zero-length
// or diagonal segments.
func classify(a, b Point) (d Direction, ok bool) {
	switch {
	case b.X > a.X && b.Y == a.Y:
		return Right, true
	case b.X < a.X && b.Y == a.Y:
		return Left, true
	case b.X == a.X && b.Y > a.Y:
		return Up, true
	case b.X == a.X && b.Y < a.Y:
		return Down, true
	}
	return 0, false
}

// kochSteps is the staircase detour in (forward, normal) units.
var kochSteps = [8][2]float64{
	{1, 0}, {0, 1}, {1, 0}, {0, -1}, {0, -1}, {1, 0}, {0, 1}, {1, 0},
}

// KochBase is the segment every curve starts from.
var KochBase = [2]Point{{-1, 0}, {1, 0}}

// MaxIterations is the deepest curve Koch generates. Depth 7 already has
// 262145 points and every further level multiplies that by eight.
const MaxIterations = 7

// KochLen returns the number of points Koch(iterations) emits.
func KochLen(iterations int) int {
	if iterations <= 0 || iterations > MaxIterations {
		return 0
	}
	n := 2
	for i := 1; i < iterations; i++ {
		n = (n-1)*8 + 1
	}
	return n
}

// Koch generates the fractal polyline for the given iteration count.
// Iteration 1 is the bare base segment; each further iteration replaces
// every segment with its 9-point staircase. A non-positive count means the
// curve is not requested; counts above MaxIterations are refused. Both
// return nil.
func Koch(iterations int) []Point {
	if iterations <= 0 || iterations > MaxIterations {
		return nil
	}
	pts := []Point{KochBase[0], KochBase[1]}
	length := KochBase[1].X - KochBase[0].X
	for i := 1; i < iterations; i++ {
		pts = kochIterate(pts, length/4)
		length /= 4
	}
	return pts
}

func kochIterate(pts []Point, step float64) []Point {
	out := make([]Point, 0, (len(pts)-1)*8+1)
	out = append(out, pts[0])
	for i := 0; i+1 < len(pts); i++ {
		out = expand(out, pts[i], pts[i+1], step)
	}
	return out
}

// expand appends the detour from a to b, excluding a itself, to out.
func expand(out []Point, a, b Point, step float64) []Point {
	d, ok := classify(a, b)
	if !ok {
		return append(out, b)
	}
	f, n := d.unit()
	cur := a
	for i, s := range kochSteps {
		if i == len(kochSteps)-1 {
			// the last step lands exactly on the segment end
			out = append(out, b)
			break
		}
		cur = Point{
			X: cur.X + step*(s[0]*f.X+s[1]*n.X),
			Y: cur.Y + step*(s[0]*f.Y+s[1]*n.Y),
		}
		out = append(out, cur)
	}
	return out
}
