package geom

// Point is a pointer position in viewport pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Sub returns the delta p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Rect represents a window position and size
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive so adjacent rects never both claim a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect returns the overlap of r and o, or the zero Rect when they do
// not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.Width, o.X+o.Width)
	y2 := min(r.Y+r.Height, o.Y+o.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the width and height of r.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Clamp constrains v to [lo, hi]. When hi < lo the lower bound wins, which
// keeps the result stable on viewports smaller than the margins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Floor returns v raised to at least min.
func Floor(v, min int) int {
	if v < min {
		return min
	}
	return v
}
