package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewGroundQuad creates a horizontal quad centered at the given point with normal (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}

// NewPlaneLightScene creates a single square area light above a diffuse plane
func NewPlaneLightScene() *Scene {
	s := &Scene{
		Name: "plane-light",
		Camera: renderer.CameraConfig{
			Eye:    core.NewVec3(0, 3, -8),
			FOV:    50,
			Width:  256,
			Height: 256,
		},
	}

	ground := material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))
	light := material.NewDiffuseLight(core.NewVec3(0.65, 0.65, 0.65), core.NewVec3(4, 4, 4))

	s.Add(
		NewGroundQuad(core.NewVec3(0, 0, 0), 12, ground),
		// 2x2 light at y=4, facing down
		geometry.NewQuad(core.NewVec3(-1, 4, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), light),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDiffuse(core.NewVec3(0.7, 0.3, 0.3))),
	)
	return s
}

// NewDarkScene is the Cornell box geometry with no emitters
func NewDarkScene() *Scene {
	s := &Scene{Name: "dark", Camera: CornellCamera()}
	for _, surface := range NewCornellScene().Surfaces {
		if surface.GetMaterial().HasEmission() {
			continue
		}
		s.Add(surface)
	}
	return s
}
