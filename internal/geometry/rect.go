package geometry

// Rectangle is an axis-aligned box in page-pixel coordinates.
// X and Y are signed; Width and Height are kept non-negative by the
// constructor. A zero-width or zero-height rectangle is valid and still
// supports Center and Area (area 0).
type Rectangle struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectangle constructs a rectangle, clamping negative sizes to zero.
func NewRectangle(x, y, width, height int) Rectangle {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Rectangle{X: x, Y: y, Width: width, Height: height}
}

// Contains reports whether the point lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Overlaps reports whether the two rectangles share interior area.
// Touching edges do not count as overlap.
func (r Rectangle) Overlaps(other Rectangle) bool {
	return r.X < other.X+other.Width && r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height && r.Y+r.Height > other.Y
}

// ContainsRect reports whether other lies entirely within r.
func (r Rectangle) ContainsRect(other Rectangle) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// Intersection returns the overlapping region of two rectangles.
// The second return value is false when they do not overlap.
func (r Rectangle) Intersection(other Rectangle) (Rectangle, bool) {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.X+r.Width, other.X+other.Width)
	y2 := min(r.Y+r.Height, other.Y+other.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rectangle{}, false
	}
	return Rectangle{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

// Expand grows the rectangle by a symmetric margin of marginPercent of its
// own size on each side. The origin moves up-left and the size grows by
// twice the margin, so the center is preserved up to integer truncation.
func (r Rectangle) Expand(marginPercent float64) Rectangle {
	marginX := int(float64(r.Width) * marginPercent / 100.0)
	marginY := int(float64(r.Height) * marginPercent / 100.0)
	return Rectangle{
		X:      r.X - marginX,
		Y:      r.Y - marginY,
		Width:  r.Width + marginX*2,
		Height: r.Height + marginY*2,
	}
}

// Area returns the rectangle area in square pixels. Degenerate
// rectangles (zero or negative size) have area 0.
func (r Rectangle) Area() uint64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return uint64(r.Width) * uint64(r.Height)
}

// Center returns the rectangle's center point (integer truncation).
func (r Rectangle) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// DistanceTo returns the Euclidean distance from the rectangle's center
// to the given point.
func (r Rectangle) DistanceTo(p Point) float64 {
	return r.Center().DistanceTo(p)
}
