package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewAxisAlignedBox(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(0, 0, 0), core.NewVec3(2, 4, 6), testMaterial)

	if box.Center != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected center (1,2,3), got %v", box.Center)
	}
	if box.HalfSize != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected half size (1,2,3), got %v", box.HalfSize)
	}

	expectedArea := 2 * (2*4 + 4*6 + 2*6)
	if math.Abs(box.Area()-float64(expectedArea)) > 1e-9 {
		t.Errorf("Expected area %d, got %f", expectedArea, box.Area())
	}
}

func TestBox_Hit_AxisAligned(t *testing.T) {
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 0, testMaterial)

	tests := []struct {
		name           string
		origin         core.Vec3
		direction      core.Vec3
		shouldHit      bool
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{"front face", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), true, 4, core.NewVec3(0, 0, 1)},
		{"back face", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), true, 4, core.NewVec3(0, 0, -1)},
		{"right face", core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0), true, 4, core.NewVec3(1, 0, 0)},
		{"left face", core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0), true, 4, core.NewVec3(-1, 0, 0)},
		{"top face", core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), true, 4, core.NewVec3(0, 1, 0)},
		{"bottom face", core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0), true, 4, core.NewVec3(0, -1, 0)},
		{"miss", core.NewVec3(3, 3, 5), core.NewVec3(0, 0, -1), false, 0, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := box.Hit(core.NewRay(tt.origin, tt.direction), 0.001, 1000)
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if hit.GeometricNormal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected outward normal %v, got %v", tt.expectedNormal, hit.GeometricNormal)
			}
			if !hit.FrontFace {
				t.Error("Expected front face hit from outside")
			}
		})
	}
}

func TestBox_BoundingBox_Rotated(t *testing.T) {
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 45, testMaterial)
	bbox := box.BoundingBox()

	// A unit cube rotated 45° around Y spans sqrt(2) along X and Z
	expected := math.Sqrt2
	if math.Abs(bbox.Max.X-expected) > 1e-9 || math.Abs(bbox.Max.Z-expected) > 1e-9 {
		t.Errorf("Expected max X,Z = %f, got %v", expected, bbox.Max)
	}
	if math.Abs(bbox.Max.Y-1) > 1e-9 || math.Abs(bbox.Min.Y+1) > 1e-9 {
		t.Errorf("Expected Y extent [-1,1], got %v", bbox)
	}
}

func TestBox_Hit_Rotated(t *testing.T) {
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 45, testMaterial)

	// Seen from above the rotated box is a diamond |x|+|z| = sqrt(2)
	hit, isHit := box.Hit(core.NewRay(core.NewVec3(5, 0.5, 0.2), core.NewVec3(-1, 0, 0)), 0.001, 1000)
	if !isHit {
		t.Fatal("Expected hit on rotated box")
	}
	expectedT := 5 - (math.Sqrt2 - 0.2)
	if math.Abs(hit.T-expectedT) > 1e-9 {
		t.Errorf("Expected t=%f, got %f", expectedT, hit.T)
	}
}

func TestBox_SamplePointOnSurface(t *testing.T) {
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 2, 3), 0, testMaterial)

	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			point, normal := box.SamplePoint(core.NewVec2((float64(i)+0.5)/10, (float64(j)+0.5)/10))
			onFace := math.Abs(math.Abs(point.X)-1) < 1e-9 ||
				math.Abs(math.Abs(point.Y)-2) < 1e-9 ||
				math.Abs(math.Abs(point.Z)-3) < 1e-9
			if !onFace {
				t.Fatalf("Sampled point %v not on box surface", point)
			}
			if math.Abs(normal.Length()-1) > 1e-9 {
				t.Fatalf("Expected unit normal, got %v", normal)
			}
		}
	}
}
