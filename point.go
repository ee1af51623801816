package lens

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Point is a point in the lens plane or the observer (source) plane.
// Both planes are expressed in units of the combined-mass Einstein radius.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// PtFromComplex converts a complex value z = x+iy to a Point.
func PtFromComplex(z complex128) Point {
	return Point{X: real(z), Y: imag(z)}
}

// Complex converts pt to the complex value x+iy, the representation used by
// the polynomial root solver.
func (pt Point) Complex() complex128 {
	return complex(pt.X, pt.Y)
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Add returns pt+o.
func (pt Point) Add(o Vec2) Point {
	return Point{X: pt.X + o.X, Y: pt.Y + o.Y}
}

// Sub computes pt−o as a vector displacement.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{X: pt.X - o.X, Y: pt.Y - o.Y}
}

// Lerp linearly interpolates between two points.
func (pt Point) Lerp(o Point, t float64) Point {
	return Point(Vec2(pt).Lerp(Vec2(o), t))
}

// Midpoint returns the midpoint of two points.
func (pt Point) Midpoint(o Point) Point {
	return Point{X: 0.5 * (pt.X + o.X), Y: 0.5 * (pt.Y + o.Y)}
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	return math.Hypot(pt.X-o.X, pt.Y-o.Y)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point) DistanceSquared(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return x*x + y*y
}

// IsInf reports whether at least one of x and y is infinite.
func (pt Point) IsInf() bool {
	return math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0)
}

// IsNaN reports whether at least one of x and y is NaN.
func (pt Point) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y)
}

// isBad reports whether z has a non-finite component, the guard the solver
// uses to reject divergent root-iteration steps.
func isBad(z complex128) bool {
	return math.IsNaN(real(z)) || math.IsNaN(imag(z)) ||
		math.IsInf(real(z), 0) || math.IsInf(imag(z), 0)
}

// cabs is a short alias for cmplx.Abs, used throughout the root solver and
// inverse-map filtering where it is called on every hot-loop iteration.
func cabs(z complex128) float64 { return cmplx.Abs(z) }
