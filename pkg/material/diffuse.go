package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Diffuse is a Lambertian surface, optionally emitting light
type Diffuse struct {
	Albedo core.Vec3 // Reflectance per channel
	Emit   core.Vec3 // Emitted radiance (zero for non-lights)
}

// NewDiffuse creates a non-emissive lambertian material
func NewDiffuse(albedo core.Vec3) *Diffuse {
	return &Diffuse{Albedo: albedo}
}

// NewDiffuseLight creates a lambertian material that also emits light
func NewDiffuseLight(albedo, emission core.Vec3) *Diffuse {
	return &Diffuse{Albedo: albedo, Emit: emission}
}

// Eval returns albedo/π for directions above the surface
func (d *Diffuse) Eval(wo, wi, normal core.Vec3) core.Vec3 {
	if wi.Dot(normal) <= 0 {
		return core.Vec3{}
	}
	return d.Albedo.Multiply(1.0 / math.Pi)
}

// Sample returns a cosine-weighted direction around the normal
func (d *Diffuse) Sample(wo, normal core.Vec3, sample core.Vec2) core.Vec3 {
	return core.SampleCosineHemisphere(normal, sample)
}

// PDF returns cos(θ)/π for directions above the surface
func (d *Diffuse) PDF(wo, wi, normal core.Vec3) float64 {
	cosTheta := wi.Dot(normal)
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

func (d *Diffuse) Emission() core.Vec3 { return d.Emit }

func (d *Diffuse) HasEmission() bool { return !d.Emit.IsZero() }

func (d *Diffuse) IsSpecular() bool { return false }
