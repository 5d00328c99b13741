package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial,
	)

	tests := []struct {
		name      string
		ray       core.Ray
		tMin      float64
		tMax      float64
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "ray hits triangle center",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)),
			tMin:      0.001,
			tMax:      1000,
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "ray misses triangle",
			ray:       core.NewRay(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, -1)),
			tMin:      0.001,
			tMax:      1000,
			shouldHit: false,
		},
		{
			name:      "ray parallel to triangle",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(1, 0, 0)),
			tMin:      0.001,
			tMax:      1000,
			shouldHit: false,
		},
		{
			name:      "ray hits from behind",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1)),
			tMin:      0.001,
			tMax:      1000,
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "hit beyond tMax",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)),
			tMin:      0.001,
			tMax:      0.5,
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := triangle.Hit(tt.ray, tt.tMin, tt.tMax)
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if isHit && hit.Normal.Dot(tt.ray.Direction) >= 0 {
				t.Errorf("Expected normal facing the ray, got %v", hit.Normal)
			}
		})
	}
}

func TestTriangle_BoundingBox(t *testing.T) {
	triangle := NewTriangle(
		core.NewVec3(-1, 0, 2),
		core.NewVec3(3, -2, 2),
		core.NewVec3(0, 4, 2),
		testMaterial,
	)
	bbox := triangle.BoundingBox()

	if bbox.Min.X > -1 || bbox.Min.Y > -2 || bbox.Max.X < 3 || bbox.Max.Y < 4 {
		t.Errorf("Bounding box %v does not contain the triangle", bbox)
	}
	if bbox.Max.Z-bbox.Min.Z <= 0 {
		t.Errorf("Expected padded Z extent, got %v", bbox)
	}
}

func TestTriangle_AreaAndSampling(t *testing.T) {
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 2, 0),
		testMaterial,
	)
	if math.Abs(triangle.Area()-2.0) > 1e-12 {
		t.Errorf("Expected area 2, got %f", triangle.Area())
	}

	random := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		point, normal := triangle.SamplePoint(core.NewVec2(random.Float64(), random.Float64()))
		if point.X < -1e-12 || point.Y < -1e-12 || point.X+point.Y > 2+1e-9 {
			t.Fatalf("Sampled point %v outside triangle", point)
		}
		if normal != core.NewVec3(0, 0, 1) {
			t.Fatalf("Expected normal (0,0,1), got %v", normal)
		}
	}
}
