// Package core holds the ground-plane geometry shared by the simulator and
// the monitor's top-down view. It has no dependencies so both sides can use
// it without pulling in the region or the terminal stack.
package core

import (
	"cmp"
	"math"
)

// Vec2 is a direction or point on the XZ ground plane. Y is up and is never
// part of alignment math.
type Vec2 struct {
	X, Z float32
}

// FromYaw returns the unit vector at yaw radians, measured from +Z toward +X.
func FromYaw(yaw float32) Vec2 {
	s, c := math.Sincos(float64(yaw))
	return Vec2{X: float32(s), Z: float32(c)}
}

// Yaw is the inverse of FromYaw. The zero vector has yaw 0.
func (v Vec2) Yaw() float32 {
	return float32(math.Atan2(float64(v.X), float64(v.Z)))
}

// Len returns the Euclidean length.
func (v Vec2) Len() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Z)))
}

// Normalize returns v scaled to unit length, or the zero vector if v is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Z: v.Z / l}
}

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Z*o.Z
}

// Scale returns v multiplied by k.
func (v Vec2) Scale(k float32) Vec2 {
	return Vec2{X: v.X * k, Z: v.Z * k}
}

// Angle returns acos of a cosine clamped to [-1, 1], so rounding noise past
// the ends never yields NaN.
func Angle(cosine float32) float32 {
	return float32(math.Acos(float64(Clamp(cosine, -1, 1))))
}

// Clamp restricts val to [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	return min(max(val, lo), hi)
}

// Rect is a cell rectangle on a Canvas.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
