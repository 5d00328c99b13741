package geometry

import (
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// TriangleMesh represents a collection of triangles with efficient ray intersection.
// It uses an internal BVH for intersection and a cumulative area table for sampling.
type TriangleMesh struct {
	triangles []*Triangle
	bvh       *BVH
	material  material.Material
	cdf       []float64 // cumulative triangle areas
	area      float64
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Transform *Transform // Optional transform applied to every vertex
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of 3 face indices forms a triangle. options may be nil.
// Degenerate (zero-area) triangles are dropped.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face index count %d is not a multiple of 3", len(faces))
	}

	workingVertices := vertices
	if options != nil && options.Transform != nil {
		workingVertices = options.Transform.ApplyAll(vertices)
	}

	numTriangles := len(faces) / 3
	triangles := make([]*Triangle, 0, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(workingVertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0, %d)", i, idx, len(workingVertices))
			}
		}

		triangle := NewTriangle(workingVertices[i0], workingVertices[i1], workingVertices[i2], mat)
		if triangle.Area() <= 0 {
			continue
		}
		triangles = append(triangles, triangle)
	}
	if len(triangles) == 0 {
		return nil, fmt.Errorf("mesh has no non-degenerate triangles")
	}

	shapes := make([]Shape, len(triangles))
	cdf := make([]float64, len(triangles))
	total := 0.0
	for i, triangle := range triangles {
		shapes[i] = triangle
		total += triangle.Area()
		cdf[i] = total
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(shapes),
		material:  mat,
		cdf:       cdf,
		area:      total,
	}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return tm.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.BoundingBox()
}

// GetTriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) GetTriangleCount() int {
	return len(tm.triangles)
}

// Area returns the summed area of all triangles
func (tm *TriangleMesh) Area() float64 {
	return tm.area
}

// SamplePoint picks a triangle proportionally to its area, then a uniform
// point on it. sample.X is reused for the in-triangle sample after rescaling.
func (tm *TriangleMesh) SamplePoint(sample core.Vec2) (core.Vec3, core.Vec3) {
	target := sample.X * tm.area
	idx := sort.SearchFloat64s(tm.cdf, target)
	if idx >= len(tm.cdf) {
		idx = len(tm.cdf) - 1
	}

	lo := 0.0
	if idx > 0 {
		lo = tm.cdf[idx-1]
	}
	u := (target - lo) / (tm.cdf[idx] - lo)
	if u > 1 {
		u = 1
	}

	return tm.triangles[idx].SamplePoint(core.NewVec2(u, sample.Y))
}

// GetMaterial returns the mesh material
func (tm *TriangleMesh) GetMaterial() material.Material {
	return tm.material
}
