// Package math provides the small vector types used by the bead generator.
package math

import "math"

// Vec2 is a 2D vector in image space.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle returns atan2(Y, X) in (-pi, pi].
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}
