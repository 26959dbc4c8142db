package geom

import (
	"fmt"
	"math"
)

// Point is a location in layout space.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// IsDegenerate reports whether either dimension is zero or negative.
func (s Size) IsDegenerate() bool { return s.Width <= 0 || s.Height <= 0 }

// Insets are distances inward from each edge of a rectangle.
type Insets struct {
	Top    float64 `json:"top" toml:"top"`
	Left   float64 `json:"left" toml:"left"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Right  float64 `json:"right" toml:"right"`
}

// Uniform returns insets with the same value on every edge.
func Uniform(v float64) Insets { return Insets{Top: v, Left: v, Bottom: v, Right: v} }

// Horizontal returns the sum of the left and right insets.
func (in Insets) Horizontal() float64 { return in.Left + in.Right }

// Vertical returns the sum of the top and bottom insets.
func (in Insets) Vertical() float64 { return in.Top + in.Bottom }

// Rect is an axis-aligned rectangle. X and Y are the top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Null is the rectangle that contains nothing, not even a point.
var Null = Rect{X: math.Inf(1), Y: math.Inf(1)}

// R is shorthand for constructing a Rect.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

// IsNull reports whether r is the null rectangle.
func (r Rect) IsNull() bool { return math.IsInf(r.X, 1) || math.IsInf(r.Y, 1) }

// IsEmpty reports whether r is null or has no area.
func (r Rect) IsEmpty() bool { return r.IsNull() || r.Width <= 0 || r.Height <= 0 }

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Union returns the smallest rectangle containing both r and other.
// A null operand is ignored; zero-area operands still extend the result.
func (r Rect) Union(other Rect) Rect {
	if r.IsNull() {
		return other
	}
	if other.IsNull() {
		return r
	}
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  max(r.MaxX(), other.MaxX()) - x,
		Height: max(r.MaxY(), other.MaxY()) - y,
	}
}

// Intersection returns the overlap of r and other, or Null when they do not
// intersect.
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Null
	}
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  min(r.MaxX(), other.MaxX()) - x,
		Height: min(r.MaxY(), other.MaxY()) - y,
	}
}

// Intersects reports whether r and other overlap. Two rectangles with area
// that merely share an edge do not intersect; a zero-width or zero-height
// rectangle intersects any rectangle whose closed bounds contain it.
func (r Rect) Intersects(other Rect) bool {
	if r.IsNull() || other.IsNull() {
		return false
	}
	return overlaps(r.X, r.MaxX(), other.X, other.MaxX()) &&
		overlaps(r.Y, r.MaxY(), other.Y, other.MaxY())
}

func overlaps(a0, a1, b0, b1 float64) bool {
	lo, hi := max(a0, b0), min(a1, b1)
	if lo < hi {
		return true
	}
	return lo == hi && (a0 == a1 || b0 == b1)
}

// Contains reports whether p lies inside r. The left and top edges are
// inside; the right and bottom edges are outside.
func (r Rect) Contains(p Point) bool {
	if r.IsNull() {
		return false
	}
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Inset returns r shrunk by in. Negative insets grow the rectangle.
func (r Rect) Inset(in Insets) Rect {
	if r.IsNull() {
		return r
	}
	return Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  r.Width - in.Horizontal(),
		Height: r.Height - in.Vertical(),
	}
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	if r.IsNull() {
		return r
	}
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// String formats r as "(x, y, w, h)".
func (r Rect) String() string {
	if r.IsNull() {
		return "(null)"
	}
	return fmt.Sprintf("(%g, %g, %g, %g)", r.X, r.Y, r.Width, r.Height)
}
