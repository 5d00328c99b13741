package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestMirror_SampleReflects(t *testing.T) {
	mirror := NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	normal := core.NewVec3(0, 1, 0)
	wo := core.NewVec3(1, -1, 0).Normalize()

	wi := mirror.Sample(wo, normal, core.Vec2{})
	expected := core.NewVec3(1, 1, 0).Normalize()
	if wi.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected reflection %v, got %v", expected, wi)
	}
}

func TestMirror_EstimatorReducesToAlbedo(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.8, 0.7)
	mirror := NewMirror(albedo)
	normal := core.NewVec3(0, 1, 0)
	wo := core.NewVec3(0.3, -1, 0.2).Normalize()

	wi := mirror.Sample(wo, normal, core.Vec2{})
	pdf := mirror.PDF(wo, wi, normal)
	if pdf != 1 {
		t.Fatalf("Expected pdf 1 on the reflection direction, got %f", pdf)
	}

	weight := mirror.Eval(wo, wi, normal).Multiply(wi.Dot(normal) / pdf)
	if weight.Subtract(albedo).Length() > 1e-9 {
		t.Errorf("Expected estimator weight %v, got %v", albedo, weight)
	}
}

func TestMirror_OffReflectionIsZero(t *testing.T) {
	mirror := NewMirror(core.NewVec3(1, 1, 1))
	normal := core.NewVec3(0, 1, 0)
	wo := core.NewVec3(1, -1, 0).Normalize()
	wi := core.NewVec3(0, 1, 0)

	if pdf := mirror.PDF(wo, wi, normal); pdf != 0 {
		t.Errorf("Expected pdf 0 away from reflection, got %f", pdf)
	}
	if f := mirror.Eval(wo, wi, normal); !f.IsZero() {
		t.Errorf("Expected zero BRDF away from reflection, got %v", f)
	}
	if !mirror.IsSpecular() || mirror.HasEmission() {
		t.Error("Mirror must be specular and non-emissive")
	}
	if math.IsNaN(mirror.Eval(wo, core.NewVec3(1, 0, 0), normal).X) {
		t.Error("Grazing evaluation produced NaN")
	}
}
