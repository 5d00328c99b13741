package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of integrator calls
	SamplesPerPixel int           // Samples taken for every pixel
	Workers         int           // Number of bands rendered in parallel
	Duration        time.Duration // Wall-clock render time
}

// merge adds the counters of a band result
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
}

// SamplesPerSecond returns the integrator throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// luminance returns Rec. 709 relative luminance
func luminance(c core.Vec3) float64 {
	return 0.2126*c.X + 0.7152*c.Y + 0.0722*c.Z
}

// CalculateAverageLuminance returns the mean linear luminance of the framebuffer
func CalculateAverageLuminance(fb *Framebuffer) float64 {
	if len(fb.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range fb.Pixels {
		total += luminance(c)
	}
	return total / float64(len(fb.Pixels))
}
