package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material is the capability set a surface exposes to the integrator.
// Implementations hold no mutable state and are shared by all render workers.
//
// Direction conventions: wo is the direction of the incoming ray (pointing
// into the surface), wi is the direction leaving the surface toward the next
// vertex or the light, normal faces the incoming ray.
type Material interface {
	// Eval returns the BRDF value for the pair of directions
	Eval(wo, wi, normal core.Vec3) core.Vec3

	// Sample draws an outgoing direction from the material's sampling distribution
	Sample(wo, normal core.Vec3, sample core.Vec2) core.Vec3

	// PDF returns the density with which Sample produces wi
	PDF(wo, wi, normal core.Vec3) float64

	// Emission returns the radiance emitted by the surface
	Emission() core.Vec3

	// HasEmission reports whether the surface is a light source
	HasEmission() bool

	// IsSpecular reports a Dirac-delta BRDF, which cannot be used with
	// area-light sampling
	IsSpecular() bool
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point           core.Vec3 // Point of intersection
	Normal          core.Vec3 // Shading normal, facing the incoming ray
	GeometricNormal core.Vec3 // Outward normal of the surface as modelled
	T               float64   // Distance along the (unit) ray direction
	FrontFace       bool      // Whether ray hit the front face
	Material        Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.GeometricNormal = outwardNormal
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
