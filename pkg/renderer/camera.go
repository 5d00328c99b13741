package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig describes a pinhole camera looking down +Z
type CameraConfig struct {
	Eye    core.Vec3 // Camera position
	FOV    float64   // Field of view in degrees
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
}

// Camera generates primary rays. Pixel (0,0) is the top-left corner and
// +X in world space maps to the left of the image.
type Camera struct {
	config     CameraConfig
	directions []core.Vec3 // one unit direction per pixel, row-major
}

// NewCamera creates a camera and precomputes every primary direction
func NewCamera(config CameraConfig) *Camera {
	scale := math.Tan(mgl64.DegToRad(config.FOV * 0.5))
	aspect := float64(config.Width) / float64(config.Height)

	directions := make([]core.Vec3, config.Width*config.Height)
	for j := 0; j < config.Height; j++ {
		y := (1 - 2*(float64(j)+0.5)/float64(config.Height)) * scale
		for i := 0; i < config.Width; i++ {
			x := (2*(float64(i)+0.5)/float64(config.Width) - 1) * aspect * scale
			directions[j*config.Width+i] = core.NewVec3(-x, y, 1).Normalize()
		}
	}

	return &Camera{config: config, directions: directions}
}

// Direction returns the unit primary direction through the center of pixel (i, j)
func (c *Camera) Direction(i, j int) core.Vec3 {
	return c.directions[j*c.config.Width+i]
}

// GetRay returns the primary ray for pixel (i, j)
func (c *Camera) GetRay(i, j int) core.Ray {
	return core.Ray{Origin: c.config.Eye, Direction: c.Direction(i, j)}
}

// Width returns the image width the camera was built for
func (c *Camera) Width() int { return c.config.Width }

// Height returns the image height the camera was built for
func (c *Camera) Height() int { return c.config.Height }
