package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// rayEpsilon is the minimum hit distance, keeping rays from re-hitting the
// surface they start on
const rayEpsilon = 1e-4

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Camera       renderer.CameraConfig
	Surfaces     []geometry.Surface  // Objects in the scene
	BVH          *geometry.BVH       // Acceleration structure, built by Preprocess
	LightSampler lights.LightSampler // Built by Preprocess from the emissive surfaces
}

// Add appends surfaces to the scene. Call Preprocess afterwards.
func (s *Scene) Add(surfaces ...geometry.Surface) {
	s.Surfaces = append(s.Surfaces, surfaces...)
}

// AddMesh converts loaded mesh data into a triangle mesh and adds it
func (s *Scene) AddMesh(mesh *loaders.MeshData, transform geometry.Transform, mat material.Material) error {
	tm, err := geometry.NewTriangleMesh(mesh.Vertices, mesh.Faces, mat, &geometry.TriangleMeshOptions{Transform: &transform})
	if err != nil {
		return fmt.Errorf("failed to build mesh: %w", err)
	}
	s.Add(tm)
	return nil
}

// Preprocess builds the BVH and the light sampler. The scene is read-only afterwards.
func (s *Scene) Preprocess() error {
	if len(s.Surfaces) == 0 {
		return fmt.Errorf("scene %q has no objects", s.Name)
	}

	shapes := make([]geometry.Shape, len(s.Surfaces))
	for i, surface := range s.Surfaces {
		shapes[i] = surface
	}
	s.BVH = geometry.NewBVH(shapes)
	s.LightSampler = lights.NewAreaLightSampler(s.Surfaces)
	return nil
}

// Intersect returns the closest hit along the ray
func (s *Scene) Intersect(ray core.Ray) (*material.HitRecord, bool) {
	if s.BVH == nil {
		return nil, false
	}
	return s.BVH.Hit(ray, rayEpsilon, 1e30)
}

// SampleLight picks a point on an emitter with density 1/EmissiveArea
func (s *Scene) SampleLight(sampler core.Sampler) (lights.LightSample, bool) {
	if s.LightSampler == nil {
		return lights.LightSample{}, false
	}
	return s.LightSampler.Sample(sampler)
}

// EmissiveArea returns the summed area of all emitters
func (s *Scene) EmissiveArea() float64 {
	if s.LightSampler == nil {
		return 0
	}
	return s.LightSampler.TotalArea()
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, surface := range s.Surfaces {
		if mesh, ok := surface.(*geometry.TriangleMesh); ok {
			count += mesh.GetTriangleCount()
		} else {
			count++
		}
	}
	return count
}

// Summary describes the scene for logs
func (s *Scene) Summary() string {
	lightCount := 0
	if s.LightSampler != nil {
		lightCount = s.LightSampler.Count()
	}
	return fmt.Sprintf("scene %q: %d objects, %d primitives, %d emitters, emissive area %.1f",
		s.Name, len(s.Surfaces), s.GetPrimitiveCount(), lightCount, s.EmissiveArea())
}
