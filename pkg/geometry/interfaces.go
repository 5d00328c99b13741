package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}

// Surface is a shape with a material and a measurable, samplable area.
// Emissive surfaces are what the light sampler picks points on.
type Surface interface {
	Shape

	// Area returns the total surface area
	Area() float64

	// SamplePoint returns a point distributed uniformly over the surface
	// together with the outward geometric normal at that point
	SamplePoint(sample core.Vec2) (point, normal core.Vec3)

	// GetMaterial returns the material of the surface
	GetMaterial() material.Material
}

// flatThickness pads the bounding boxes of planar shapes
const flatThickness = 1e-4
