package lights

import "github.com/df07/go-pathtracer/pkg/core"

// LightSample contains information about a sampled point on a light
type LightSample struct {
	Point    core.Vec3 // Point on the light source
	Normal   core.Vec3 // Outward normal at the light sample point
	Emission core.Vec3 // Emitted radiance
	PDF      float64   // Area density of this sample (1 / total emissive area)
}

// LightSampler picks points on the scene's light sources for direct lighting
type LightSampler interface {
	// Sample returns a point on a light, or false when the scene has no lights
	Sample(sampler core.Sampler) (LightSample, bool)

	// TotalArea returns the summed area of all emitters
	TotalArea() float64

	// Count returns the number of emitters
	Count() int
}
