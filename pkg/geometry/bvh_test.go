package geometry

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	if _, isHit := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), 0.001, 1000); isHit {
		t.Error("Expected empty BVH to miss")
	}
}

func TestBVH_MatchesLinearSearch(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	var shapes []Shape
	for i := 0; i < 100; i++ {
		center := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		shapes = append(shapes, NewSphere(center, 0.2+random.Float64(), testMaterial))
	}
	bvh := NewBVH(shapes)

	for i := 0; i < 200; i++ {
		origin := core.NewVec3(random.Float64()*40-20, random.Float64()*40-20, -30)
		target := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, 0)
		ray := core.NewRay(origin, target.Subtract(origin))

		var linear float64
		linearHit := false
		for _, shape := range shapes {
			if hit, ok := shape.Hit(ray, 0.001, 1000); ok && (!linearHit || hit.T < linear) {
				linear = hit.T
				linearHit = true
			}
		}

		hit, ok := bvh.Hit(ray, 0.001, 1000)
		if ok != linearHit {
			t.Fatalf("ray %d: BVH hit=%v, linear hit=%v", i, ok, linearHit)
		}
		if ok && hit.T != linear {
			t.Fatalf("ray %d: BVH t=%f, linear t=%f", i, hit.T, linear)
		}
	}
}

func TestBVH_Stats(t *testing.T) {
	var shapes []Shape
	for i := 0; i < 64; i++ {
		shapes = append(shapes, NewSphere(core.NewVec3(float64(i)*3, 0, 0), 1, testMaterial))
	}
	stats := NewBVH(shapes).getStats()

	if stats.totalShapes != 64 {
		t.Errorf("Expected 64 shapes in leaves, got %d", stats.totalShapes)
	}
	if stats.leafNodes < 64/leafThreshold {
		t.Errorf("Expected at least %d leaves, got %d", 64/leafThreshold, stats.leafNodes)
	}
	if stats.maxDepth == 0 {
		t.Error("Expected a tree deeper than a single leaf")
	}
}

func TestTransform_Apply(t *testing.T) {
	transform := NewTransform(core.NewVec3(1, 2, 3), 90, core.NewVec3(2, 2, 2))

	// Scale (1,0,0) -> (2,0,0), rotate 90° around Y -> (0,0,-2), translate
	got := transform.Apply(core.NewVec3(1, 0, 0))
	expected := core.NewVec3(1, 2, 1)
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	if v := transform.ApplyVector(core.NewVec3(0, 1, 0)); v.Subtract(core.NewVec3(0, 2, 0)).Length() > 1e-9 {
		t.Errorf("Expected vector (0,2,0), got %v", v)
	}

	if p := IdentityTransform().Apply(core.NewVec3(4, 5, 6)); p != core.NewVec3(4, 5, 6) {
		t.Errorf("Expected identity to keep point, got %v", p)
	}
}

func TestTransform_Then(t *testing.T) {
	shift := NewTransform(core.NewVec3(-1, 0, 0), 0, core.NewVec3(1, 1, 1))
	grow := NewTransform(core.Vec3{}, 0, core.NewVec3(3, 3, 3))

	// Shift first, then scale: (2,0,0) -> (1,0,0) -> (3,0,0)
	got := shift.Then(grow).Apply(core.NewVec3(2, 0, 0))
	if got.Subtract(core.NewVec3(3, 0, 0)).Length() > 1e-12 {
		t.Errorf("Expected (3,0,0), got %v", got)
	}
}
