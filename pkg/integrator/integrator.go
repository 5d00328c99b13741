package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Scene is the read-only view of the world an integrator needs.
// Implementations must be safe for concurrent use.
type Scene interface {
	// Intersect returns the closest hit along the ray
	Intersect(ray core.Ray) (*material.HitRecord, bool)

	// SampleLight picks a point on a light source, or false if there are none
	SampleLight(sampler core.Sampler) (lights.LightSample, bool)
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along a primary camera ray
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3
}
