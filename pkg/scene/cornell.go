package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Cornell box extents
const (
	cornellWidth  = 556.0
	cornellHeight = 548.8
	cornellDepth  = 559.2
)

// Materials of the measured Cornell box
var (
	cornellRed   = core.NewVec3(0.63, 0.065, 0.05)
	cornellGreen = core.NewVec3(0.14, 0.45, 0.091)
	cornellWhite = core.NewVec3(0.725, 0.71, 0.68)
)

// cornellLightEmission combines three blackbody-like spectral peaks into RGB
func cornellLightEmission() core.Vec3 {
	return core.NewVec3(0.747+0.058, 0.747+0.258, 0.747).Multiply(8.0).
		Add(core.NewVec3(0.740+0.287, 0.740+0.160, 0.740).Multiply(15.6)).
		Add(core.NewVec3(0.737+0.642, 0.737+0.159, 0.737).Multiply(18.4))
}

// CornellCamera returns the classic 784x784 view into the box
func CornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Eye:    core.NewVec3(278, 273, -800),
		FOV:    40,
		Width:  784,
		Height: 784,
	}
}

// NewCornellScene creates the Cornell box with two diffuse boxes
func NewCornellScene() *Scene {
	return newCornell("cornell", material.NewDiffuse(cornellWhite))
}

// NewCornellMirrorScene replaces the tall box with a mirror
func NewCornellMirrorScene() *Scene {
	return newCornell("cornell-mirror", material.NewMirror(core.NewVec3(0.9, 0.9, 0.9)))
}

func newCornell(name string, tallBoxMaterial material.Material) *Scene {
	s := &Scene{Name: name, Camera: CornellCamera()}

	white := material.NewDiffuse(cornellWhite)
	red := material.NewDiffuse(cornellRed)
	green := material.NewDiffuse(cornellGreen)
	light := material.NewDiffuseLight(core.NewVec3(0.65, 0.65, 0.65), cornellLightEmission())

	s.Add(
		// Floor, normal +Y
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, cornellDepth), core.NewVec3(cornellWidth, 0, 0), white),
		// Ceiling, normal -Y
		geometry.NewQuad(core.NewVec3(0, cornellHeight, 0), core.NewVec3(cornellWidth, 0, 0), core.NewVec3(0, 0, cornellDepth), white),
		// Back wall, normal -Z
		geometry.NewQuad(core.NewVec3(0, 0, cornellDepth), core.NewVec3(0, cornellHeight, 0), core.NewVec3(cornellWidth, 0, 0), white),
		// Red wall on the image left (world +X), normal -X
		geometry.NewQuad(core.NewVec3(cornellWidth, 0, 0), core.NewVec3(0, 0, cornellDepth), core.NewVec3(0, cornellHeight, 0), red),
		// Green wall on the image right (world X=0), normal +X
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, cornellHeight, 0), core.NewVec3(0, 0, cornellDepth), green),
		// Ceiling light just below the ceiling, normal -Y
		geometry.NewQuad(core.NewVec3(213, 548.7, 227), core.NewVec3(130, 0, 0), core.NewVec3(0, 0, 105), light),
		// Short box
		geometry.NewBox(core.NewVec3(185.5, 82.5, 169), core.NewVec3(82.5, 82.5, 82.5), -17, white),
		// Tall box
		geometry.NewBox(core.NewVec3(368.5, 165, 351.5), core.NewVec3(82.5, 165, 82.5), 17, tallBoxMaterial),
	)

	return s
}

// CornellMeshTransform fits a mesh with the given bounds onto the Cornell floor,
// centered at (278, 0, 278) and scaled to the requested height
func CornellMeshTransform(min, max core.Vec3, height, rotateY float64) geometry.Transform {
	size := max.Subtract(min)
	scale := 1.0
	if size.Y > 0 {
		scale = height / size.Y
	}

	// Move the mesh's base center to the origin first
	center := core.NewVec3((min.X+max.X)*0.5, min.Y, (min.Z+max.Z)*0.5)
	toOrigin := geometry.NewTransform(center.Negate(), 0, core.NewVec3(1, 1, 1))
	place := geometry.NewTransform(core.NewVec3(278, 0, 278), rotateY, core.NewVec3(scale, scale, scale))
	return toOrigin.Then(place)
}
