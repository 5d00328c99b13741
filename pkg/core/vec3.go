package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a point, a direction or an RGB radiance triple. Geometry code treats
// it as a vector; the integrator multiplies colors component-wise.
type Vec3 struct {
	X, Y, Z float64
}

func NewVec3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Subtract(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Multiply(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) MultiplyVec(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Negate() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) LengthSquared() float64 { return v.Dot(v) }
func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }
func (v Vec3) MaxComponent() float64 { return max(v.X, v.Y, v.Z) }
func (v Vec3) IsZero() bool { return v == Vec3{} }
func (v Vec3) Mgl() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }
func FromMgl(m mgl64.Vec3) Vec3 { return Vec3{m[0], m[1], m[2]} }
func (v Vec3) Cross(o Vec3) Vec3 { return FromMgl(v.Mgl().Cross(o.Mgl())) }

// Axis returns the X, Y or Z component for axis 0, 1 or 2; anything else reads Z
func (v Vec3) Axis(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Normalize returns the unit vector, or zero for a zero vector
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

// Clamp limits every component to [lo, hi]
func (v Vec3) Clamp(lo, hi float64) Vec3 {
	return Vec3{
		X: mgl64.Clamp(v.X, lo, hi),
		Y: mgl64.Clamp(v.Y, lo, hi),
		Z: mgl64.Clamp(v.Z, lo, hi),
	}
}

func (v Vec3) Pow(exponent float64) Vec3 {
	return Vec3{math.Pow(v.X, exponent), math.Pow(v.Y, exponent), math.Pow(v.Z, exponent)}
}

// GammaCorrect clamps to [0,1] and raises each channel to gamma. NaN and
// negative channels map to 0.
func (v Vec3) GammaCorrect(gamma float64) Vec3 {
	channel := func(c float64) float64 {
		if math.IsNaN(c) || c <= 0 {
			return 0
		}
		return math.Pow(math.Min(c, 1), gamma)
	}
	return Vec3{channel(v.X), channel(v.Y), channel(v.Z)}
}

// HasNaN also reports infinities; both poison an accumulated pixel
func (v Vec3) HasNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) ||
		math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) || math.IsInf(v.Z, 0)
}

// Vec2 is a 2D sample in [0,1)²
type Vec2 struct {
	X, Y float64
}

func NewVec2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Ray has a unit direction, so hit distances are in world units
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay normalizes direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

func (r Ray) At(t float64) Vec3 { return r.Origin.Add(r.Direction.Multiply(t)) }
