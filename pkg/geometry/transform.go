package geometry

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Transform is an affine transform applied to geometry at build time.
// Scale is applied first, then rotation around Y, then translation.
type Transform struct {
	matrix mgl64.Mat4
}

// IdentityTransform returns a transform that leaves points unchanged
func IdentityTransform() Transform {
	return Transform{matrix: mgl64.Ident4()}
}

// NewTransform composes translate * rotateY * scale. rotateY is in degrees.
func NewTransform(translate core.Vec3, rotateY float64, scale core.Vec3) Transform {
	t := mgl64.Translate3D(translate.X, translate.Y, translate.Z)
	r := mgl64.HomogRotate3DY(mgl64.DegToRad(rotateY))
	s := mgl64.Scale3D(scale.X, scale.Y, scale.Z)
	return Transform{matrix: t.Mul4(r).Mul4(s)}
}

// Then returns the transform that applies t first and next afterwards
func (t Transform) Then(next Transform) Transform {
	return Transform{matrix: next.matrix.Mul4(t.matrix)}
}

// Apply transforms a point
func (t Transform) Apply(p core.Vec3) core.Vec3 {
	return core.FromMgl(mgl64.TransformCoordinate(p.Mgl(), t.matrix))
}

// ApplyVector transforms a direction, ignoring translation
func (t Transform) ApplyVector(d core.Vec3) core.Vec3 {
	return core.FromMgl(mgl64.TransformNormal(d.Mgl(), t.matrix))
}

// ApplyAll transforms a slice of points into a new slice
func (t Transform) ApplyAll(points []core.Vec3) []core.Vec3 {
	out := make([]core.Vec3, len(points))
	for i, p := range points {
		out[i] = t.Apply(p)
	}
	return out
}
