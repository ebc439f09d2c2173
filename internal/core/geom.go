// Package core provides fundamental types and utilities shared by the game
// logic and the front ends. It has no UI dependencies (especially no Bubble
// Tea or Ebiten) so the simulation stays pure and testable.
package core

import "math"

// Axis names a velocity component.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns the axis name.
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Vec is a 2D vector in canvas units.
type Vec struct {
	X, Y float64
}

// Len returns the vector magnitude.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Reflect negates the component of v on the given axis.
func Reflect(v Vec, axis Axis) Vec {
	switch axis {
	case AxisX:
		v.X = -v.X
	case AxisY:
		v.Y = -v.Y
	}
	return v
}

// Rect is an axis-aligned bounding box in canvas units.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 {
	return r.X + r.W/2
}

// Translate returns r moved by v.
func (r Rect) Translate(v Vec) Rect {
	r.X += v.X
	r.Y += v.Y
	return r
}

// AboveOrBelow reports whether r's vertical extent lies entirely outside
// other's. Shared edges count as outside.
func (r Rect) AboveOrBelow(other Rect) bool {
	return r.Bottom() <= other.Y || r.Y >= other.Bottom()
}

// LeftOrRight reports whether r's horizontal extent lies entirely outside
// other's. Shared edges count as outside.
func (r Rect) LeftOrRight(other Rect) bool {
	return r.Right() <= other.X || r.X >= other.Right()
}

// RectsOverlap returns true if a and b strictly overlap on both axes.
// Touching edges do not count as overlap.
func RectsOverlap(a, b Rect) bool {
	return a.X < b.Right() && a.Right() > b.X &&
		a.Y < b.Bottom() && a.Bottom() > b.Y
}

// Intersects is the method form of RectsOverlap.
func (r Rect) Intersects(other Rect) bool {
	return RectsOverlap(r, other)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
