package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Up is the +Z unit vector, the surface normal of a flat texel.
var Up = Vec3{0, 0, 1}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// InUnitCube reports whether every component lies in [-1, 1].
func (v Vec3) InUnitCube() bool {
	return v.X >= -1 && v.X <= 1 && v.Y >= -1 && v.Y <= 1 && v.Z >= -1 && v.Z <= 1
}
