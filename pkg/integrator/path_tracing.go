package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Config holds the path tracer's tunables
type Config struct {
	RussianRoulette float64 // Continuation probability for indirect bounces, in (0, 1]
	MaxDepth        int     // Hard recursion limit
	ShadowEpsilon   float64 // Visibility tolerance is sqrt(ShadowEpsilon)
	PDFEpsilon      float64 // Densities at or below this are treated as zero

	// SpecularEmission lets a ray leaving a specular bounce count the
	// emission it hits. Off, emitters seen past a mirror are black.
	SpecularEmission bool
}

// DefaultConfig returns the standard path tracing configuration
func DefaultConfig() Config {
	return Config{
		RussianRoulette: 0.8,
		MaxDepth:        50,
		ShadowEpsilon:   1e-5,
		PDFEpsilon:      1e-8,
	}
}

// Validate reports the first out-of-range field
func (c Config) Validate() error {
	if c.RussianRoulette <= 0 || c.RussianRoulette > 1 {
		return fmt.Errorf("russian roulette probability %v not in (0, 1]", c.RussianRoulette)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth %d is negative", c.MaxDepth)
	}
	if c.ShadowEpsilon < 0 || c.PDFEpsilon < 0 {
		return fmt.Errorf("epsilons must be non-negative")
	}
	return nil
}

// PathTracingIntegrator implements unidirectional path tracing with
// area-light sampling for direct light and Russian roulette for indirect light
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// RayColor computes the color for a primary ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	return pt.CastRay(ray, scene, 0, sampler)
}

// CastRay estimates radiance along ray at the given bounce depth. An emitter
// hit at depth 0 returns its emission unchanged; emitters hit at depth > 0
// contribute nothing since direct lighting already counted them. Shaded
// results are clamped per channel to [0, 1].
func (pt *PathTracingIntegrator) CastRay(ray core.Ray, scene Scene, depth int, sampler core.Sampler) core.Vec3 {
	return pt.radiance(ray, scene, depth, false, sampler)
}

// radiance is CastRay with an override for counting emission at depth > 0,
// used after specular bounces when SpecularEmission is set
func (pt *PathTracingIntegrator) radiance(ray core.Ray, scene Scene, depth int, countEmission bool, sampler core.Sampler) core.Vec3 {
	if depth > pt.config.MaxDepth {
		return core.Vec3{}
	}

	hit, isHit := scene.Intersect(ray)
	if !isHit {
		return core.Vec3{}
	}

	mat := hit.Material
	if mat.HasEmission() {
		if depth == 0 || countEmission {
			return mat.Emission()
		}
		return core.Vec3{}
	}

	wo := ray.Direction
	var direct core.Vec3
	if !mat.IsSpecular() {
		direct = pt.directLight(hit, wo, scene, sampler)
	}
	indirect := pt.indirectLight(hit, wo, scene, depth, sampler)

	color := direct.Add(indirect)
	if color.HasNaN() {
		return core.Vec3{}
	}
	return color.Clamp(0, 1)
}

// directLight samples one point on the lights and returns its unoccluded contribution
func (pt *PathTracingIntegrator) directLight(hit *material.HitRecord, wo core.Vec3, scene Scene, sampler core.Sampler) core.Vec3 {
	lightSample, ok := scene.SampleLight(sampler)
	if !ok || lightSample.PDF <= pt.config.PDFEpsilon {
		return core.Vec3{}
	}

	toLight := lightSample.Point.Subtract(hit.Point)
	distSquared := toLight.LengthSquared()
	if distSquared <= pt.config.PDFEpsilon {
		return core.Vec3{}
	}
	dist := math.Sqrt(distSquared)
	wl := toLight.Multiply(1.0 / dist)

	cosSurface := hit.Normal.Dot(wl)
	cosLight := lightSample.Normal.Dot(wl.Negate())
	if cosSurface <= 0 || cosLight <= 0 {
		return core.Vec3{}
	}

	// Visible when nothing lies strictly between the point and the light
	if blocker, blocked := scene.Intersect(core.NewRay(hit.Point, wl)); blocked {
		if blocker.T < dist-math.Sqrt(pt.config.ShadowEpsilon) {
			return core.Vec3{}
		}
	}

	f := hit.Material.Eval(wo, wl, hit.Normal)
	return lightSample.Emission.MultiplyVec(f).Multiply(cosSurface * cosLight / distSquared / lightSample.PDF)
}

// indirectLight continues the path with probability RussianRoulette
func (pt *PathTracingIntegrator) indirectLight(hit *material.HitRecord, wo core.Vec3, scene Scene, depth int, sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() >= pt.config.RussianRoulette {
		return core.Vec3{}
	}

	mat := hit.Material
	wi := mat.Sample(wo, hit.Normal, sampler.Get2D())
	pdf := mat.PDF(wo, wi, hit.Normal)
	if pdf <= pt.config.PDFEpsilon {
		return core.Vec3{}
	}

	cosine := wi.Dot(hit.Normal)
	if cosine <= 0 {
		return core.Vec3{}
	}

	countEmission := pt.config.SpecularEmission && mat.IsSpecular()
	incoming := pt.radiance(core.NewRay(hit.Point, wi), scene, depth+1, countEmission, sampler)
	f := mat.Eval(wo, wi, hit.Normal)
	return incoming.MultiplyVec(f).Multiply(cosine / pdf / pt.config.RussianRoulette)
}
