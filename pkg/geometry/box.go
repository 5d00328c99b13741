package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box represents a rectangular box made up of 6 quads, rotated around Y
type Box struct {
	Center    core.Vec3         // Center point of the box
	HalfSize  core.Vec3         // Half-extents along each local axis
	RotationY float64           // Rotation around Y in degrees
	Material  material.Material // Material for all faces
	faces     [6]*Quad
	bbox      core.AABB
	area      float64
}

// NewBox creates a box. halfSize of (1,1,1) makes a 2x2x2 box.
func NewBox(center, halfSize core.Vec3, rotationY float64, mat material.Material) *Box {
	box := &Box{
		Center:    center,
		HalfSize:  halfSize,
		RotationY: rotationY,
		Material:  mat,
	}
	box.generateFaces(NewTransform(center, rotationY, halfSize))
	return box
}

// NewAxisAlignedBox creates a box spanning min to max
func NewAxisAlignedBox(min, max core.Vec3, mat material.Material) *Box {
	center := min.Add(max).Multiply(0.5)
	return NewBox(center, max.Subtract(center), 0, mat)
}

// generateFaces creates the 6 outward-facing quads from the transformed unit cube
func (b *Box) generateFaces(transform Transform) {
	corners := transform.ApplyAll([]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	})

	face := func(corner, u, v int) *Quad {
		return NewQuad(corners[corner], corners[u].Subtract(corners[corner]), corners[v].Subtract(corners[corner]), b.Material)
	}

	b.faces = [6]*Quad{
		face(4, 5, 7), // front (Z+)
		face(1, 0, 2), // back (Z-)
		face(5, 1, 6), // right (X+)
		face(0, 4, 3), // left (X-)
		face(3, 7, 2), // top (Y+)
		face(4, 0, 5), // bottom (Y-)
	}

	b.bbox = core.NewAABBFromPoints(corners...)
	b.area = 0
	for _, f := range b.faces {
		b.area += f.Area()
	}
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestT := tMax

	for _, face := range b.faces {
		if hit, isHit := face.Hit(ray, tMin, closestT); isHit {
			closestT = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.bbox
}

// Area returns the total area of the six faces
func (b *Box) Area() float64 {
	return b.area
}

// SamplePoint picks a face proportionally to its area and a uniform point on it
func (b *Box) SamplePoint(sample core.Vec2) (core.Vec3, core.Vec3) {
	target := sample.X * b.area
	acc := 0.0
	for i, f := range b.faces {
		lo := acc
		acc += f.Area()
		if target <= acc || i == len(b.faces)-1 {
			u := 0.0
			if f.Area() > 0 {
				u = (target - lo) / f.Area()
			}
			return f.SamplePoint(core.NewVec2(clamp01(u), sample.Y))
		}
	}
	return b.Center, core.Vec3{}
}

// GetMaterial returns the box material
func (b *Box) GetMaterial() material.Material {
	return b.Material
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
