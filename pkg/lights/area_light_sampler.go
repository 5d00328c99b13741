package lights

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// AreaLightSampler samples emitters proportionally to their surface area.
// It is immutable after construction and safe for concurrent use.
type AreaLightSampler struct {
	emitters  []geometry.Surface
	totalArea float64
}

// NewAreaLightSampler collects the emissive surfaces and sums their area.
// Non-emissive surfaces are ignored.
func NewAreaLightSampler(surfaces []geometry.Surface) *AreaLightSampler {
	sampler := &AreaLightSampler{}
	for _, surface := range surfaces {
		mat := surface.GetMaterial()
		if mat == nil || !mat.HasEmission() || surface.Area() <= 0 {
			continue
		}
		sampler.emitters = append(sampler.emitters, surface)
		sampler.totalArea += surface.Area()
	}
	return sampler
}

// Sample draws p uniformly in [0, totalArea), walks the emitters accumulating
// area and samples a uniform point on the first whose running sum reaches p
func (s *AreaLightSampler) Sample(sampler core.Sampler) (LightSample, bool) {
	if len(s.emitters) == 0 || s.totalArea <= 0 {
		return LightSample{}, false
	}

	p := sampler.Get1D() * s.totalArea
	selected := s.emitters[len(s.emitters)-1]
	cumulative := 0.0
	for _, emitter := range s.emitters {
		cumulative += emitter.Area()
		if p <= cumulative {
			selected = emitter
			break
		}
	}

	point, normal := selected.SamplePoint(sampler.Get2D())
	return LightSample{
		Point:    point,
		Normal:   normal,
		Emission: selected.GetMaterial().Emission(),
		PDF:      1.0 / s.totalArea,
	}, true
}

// TotalArea returns the summed area of all emitters
func (s *AreaLightSampler) TotalArea() float64 {
	return s.totalArea
}

// Count returns the number of emitters
func (s *AreaLightSampler) Count() int {
	return len(s.emitters)
}
