package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// matchTolerance decides whether an evaluated direction is the mirror direction
const matchTolerance = 1e-6

// Mirror is a perfect specular reflector
type Mirror struct {
	Albedo core.Vec3 // Reflected fraction per channel
}

// NewMirror creates a new mirror material
func NewMirror(albedo core.Vec3) *Mirror {
	return &Mirror{Albedo: albedo}
}

// Eval returns albedo/cos(θ) on the reflection direction and zero elsewhere,
// so that Eval·cos/PDF reduces to the albedo
func (m *Mirror) Eval(wo, wi, normal core.Vec3) core.Vec3 {
	cosTheta := wi.Dot(normal)
	if cosTheta <= 0 || !m.isReflection(wo, wi, normal) {
		return core.Vec3{}
	}
	return m.Albedo.Multiply(1.0 / cosTheta)
}

// Sample returns the perfect reflection of wo about the normal
func (m *Mirror) Sample(wo, normal core.Vec3, sample core.Vec2) core.Vec3 {
	return reflect(wo, normal)
}

// PDF is a discrete probability of one on the reflection direction
func (m *Mirror) PDF(wo, wi, normal core.Vec3) float64 {
	if !m.isReflection(wo, wi, normal) {
		return 0
	}
	return 1
}

func (m *Mirror) Emission() core.Vec3 { return core.Vec3{} }

func (m *Mirror) HasEmission() bool { return false }

func (m *Mirror) IsSpecular() bool { return true }

func (m *Mirror) isReflection(wo, wi, normal core.Vec3) bool {
	return wi.Subtract(reflect(wo, normal)).Length() < matchTolerance
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
