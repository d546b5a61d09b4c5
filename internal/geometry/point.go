package geometry

import "math"

// Point is a 2D coordinate in page-pixel space. Coordinates are signed:
// margin expansion near the page edge can push geometry to negative values.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPoint constructs a point.
func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

// DistanceTo returns the Euclidean distance to another point.
func (p Point) DistanceTo(other Point) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Hypot(dx, dy)
}
