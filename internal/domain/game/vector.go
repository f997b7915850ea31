package game

import (
	"math"
)

// Vec3 is a position or direction in world space
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// LengthSquared returns |v|^2
func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

// Length returns |v|
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalize returns the unit vector in v's direction; the zero vector is
// returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// DistanceTo returns the distance between two points
func (v Vec3) DistanceTo(o Vec3) float64 {
	return o.Sub(v).Length()
}
