package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultGamma is the display exponent applied when converting to bytes
const DefaultGamma = 0.6

// Framebuffer holds linear radiance for every pixel, row-major from the top-left
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the pixel at column i, row j
func (fb *Framebuffer) At(i, j int) core.Vec3 {
	return fb.Pixels[j*fb.Width+i]
}

// Set stores the pixel at column i, row j
func (fb *Framebuffer) Set(i, j int, c core.Vec3) {
	fb.Pixels[j*fb.Width+i] = c
}

// Add accumulates into the pixel at column i, row j
func (fb *Framebuffer) Add(i, j int, c core.Vec3) {
	idx := j*fb.Width + i
	fb.Pixels[idx] = fb.Pixels[idx].Add(c)
}

// ToByte clamps v to [0,1], applies the gamma exponent and truncates to 0..255
func ToByte(v, gamma float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(255 * math.Pow(v, gamma))
}

// ToImage converts the framebuffer to an 8-bit RGBA image
func (fb *Framebuffer) ToImage(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for j := 0; j < fb.Height; j++ {
		for i := 0; i < fb.Width; i++ {
			c := fb.At(i, j).GammaCorrect(gamma)
			img.SetRGBA(i, j, color.RGBA{
				R: uint8(255 * c.X),
				G: uint8(255 * c.Y),
				B: uint8(255 * c.Z),
				A: 255,
			})
		}
	}
	return img
}
