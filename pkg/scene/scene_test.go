package scene

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

func TestCreate_BuiltIns(t *testing.T) {
	tests := []struct {
		name         string
		emissiveArea float64
	}{
		{"cornell", 130 * 105},
		{"cornell-mirror", 130 * 105},
		{"plane-light", 4},
		{"dark", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Create(tt.name)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.BVH == nil || s.LightSampler == nil {
				t.Fatal("Expected scene to be preprocessed")
			}
			if math.Abs(s.EmissiveArea()-tt.emissiveArea) > 1e-9 {
				t.Errorf("Expected emissive area %f, got %f", tt.emissiveArea, s.EmissiveArea())
			}
		})
	}
}

func TestCreate_Unknown(t *testing.T) {
	if _, err := Create("teapot"); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestNames_Sorted(t *testing.T) {
	names := Names()
	expected := []string{"cornell", "cornell-mirror", "dark", "plane-light"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, names)
		}
	}
}

func TestCornell_CameraSeesBackWall(t *testing.T) {
	s, err := Create("cornell")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Above the tall box and below the light, straight to the back wall
	origin := core.NewVec3(278, 450, -800)
	hit, ok := s.Intersect(core.NewRay(origin, core.NewVec3(0, 0, 1)))
	if !ok {
		t.Fatal("Expected the ray to hit the box")
	}
	if math.Abs(hit.Point.Z-cornellDepth) > 1e-6 {
		t.Errorf("Expected back wall hit at z=%f, got %v", cornellDepth, hit.Point)
	}
}

func TestCornell_LightFacesDown(t *testing.T) {
	s, _ := Create("cornell")
	sampler := core.NewSeededSampler(42)
	for i := 0; i < 20; i++ {
		sample, ok := s.SampleLight(sampler)
		if !ok {
			t.Fatal("Expected a light sample")
		}
		if sample.Normal != core.NewVec3(0, -1, 0) {
			t.Fatalf("Expected light normal (0,-1,0), got %v", sample.Normal)
		}
		if sample.Point.Y != 548.7 {
			t.Fatalf("Expected light point at y=548.7, got %v", sample.Point)
		}
	}
}

func TestCornellLightEmission(t *testing.T) {
	e := cornellLightEmission()
	expected := core.NewVec3(47.8348, 38.5664, 31.0808)
	if e.Subtract(expected).Length() > 1e-3 {
		t.Errorf("Expected emission %v, got %v", expected, e)
	}
}

func renderScene(t *testing.T, s *Scene, size, spp, workers int) *renderer.Framebuffer {
	t.Helper()
	return renderSceneWith(t, s, size, spp, workers, integrator.DefaultConfig())
}

func renderSceneWith(t *testing.T, s *Scene, size, spp, workers int, integConfig integrator.Config) *renderer.Framebuffer {
	t.Helper()
	camera := s.Camera
	camera.Width, camera.Height = size, size

	config := renderer.Config{Width: size, Height: size, SamplesPerPixel: spp, Workers: workers, Seed: 1, Gamma: renderer.DefaultGamma}
	r := renderer.NewRenderer(s, renderer.NewCamera(camera), integrator.NewPathTracingIntegrator(integConfig), config, nil)
	fb, _, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return fb
}

func TestRender_PlaneLight(t *testing.T) {
	s, err := Create("plane-light")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	fb := renderScene(t, s, 24, 4, 3)

	lit := 0
	for idx, c := range fb.Pixels {
		if c.HasNaN() || c.X < 0 || c.Y < 0 || c.Z < 0 {
			t.Fatalf("Pixel %d = %v, expected finite non-negative radiance", idx, c)
		}
		if c.MaxComponent() > 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("Expected some lit pixels")
	}

	// The light is visible, so radiance above 1 must saturate in the image
	img := fb.ToImage(renderer.DefaultGamma)
	white := 0
	for j := 0; j < fb.Height; j++ {
		for i := 0; i < fb.Width; i++ {
			c := fb.At(i, j)
			if c.X > 1 && c.Y > 1 && c.Z > 1 {
				if px := img.RGBAAt(i, j); px.R != 255 || px.G != 255 || px.B != 255 {
					t.Fatalf("Pixel (%d,%d) radiance %v encoded as %v, expected white", i, j, c, px)
				}
				white++
			}
		}
	}
	if white == 0 {
		t.Error("Expected the light to appear in the image")
	}
}

// newLightOverPlane is a lone down-facing area light above a diffuse plane
func newLightOverPlane() (*Scene, material.Material, core.Vec3) {
	emission := core.NewVec3(4, 3, 2)
	ground := material.NewDiffuse(core.NewVec3(0.8, 0.6, 0.4))
	s := &Scene{
		Name:   "light-over-plane",
		Camera: renderer.CameraConfig{Eye: core.NewVec3(0, 3, -8), FOV: 50},
	}
	s.Add(
		NewGroundQuad(core.NewVec3(0, 0, 0), 6, ground),
		geometry.NewQuad(core.NewVec3(-1, 4, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2),
			material.NewDiffuseLight(core.NewVec3(0, 0, 0), emission)),
	)
	return s, ground, emission
}

func TestRender_LightOverPlane_PrimaryHits(t *testing.T) {
	s, ground, emission := newLightOverPlane()
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	integConfig := integrator.DefaultConfig()
	integConfig.RussianRoulette = 1
	const size = 32
	fb := renderSceneWith(t, s, size, 1, 4, integConfig)

	cameraConfig := s.Camera
	cameraConfig.Width, cameraConfig.Height = size, size
	camera := renderer.NewCamera(cameraConfig)

	var misses, planeHits, lightHits int
	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			c := fb.At(i, j)
			hit, ok := s.Intersect(camera.GetRay(i, j))
			switch {
			case !ok:
				misses++
				if c != (core.Vec3{}) {
					t.Errorf("Pixel (%d,%d) misses the scene but has radiance %v", i, j, c)
				}
			case hit.Material == ground:
				planeHits++
				if c.X <= 0 || c.Y <= 0 || c.Z <= 0 {
					t.Errorf("Pixel (%d,%d) sees the lit plane but has radiance %v", i, j, c)
				}
			default:
				lightHits++
				if c != emission {
					t.Errorf("Pixel (%d,%d) sees the light; expected %v, got %v", i, j, emission, c)
				}
			}
		}
	}

	if misses == 0 || planeHits == 0 || lightHits == 0 {
		t.Errorf("Expected misses, plane hits and light hits, got %d/%d/%d", misses, planeHits, lightHits)
	}
}

func TestRender_DarkSceneIsBlack(t *testing.T) {
	s, err := Create("dark")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	fb := renderScene(t, s, 12, 2, 4)

	for idx, c := range fb.Pixels {
		if c != (core.Vec3{}) {
			t.Fatalf("Pixel %d = %v, expected black", idx, c)
		}
	}
}

func TestRender_CornellThreadedMatchesSingleThreaded(t *testing.T) {
	s, err := Create("cornell")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	single := renderScene(t, s, 16, 2, 1)
	threaded := renderScene(t, s, 16, 2, 5)
	for idx := range single.Pixels {
		if single.Pixels[idx] != threaded.Pixels[idx] {
			t.Fatalf("Pixel %d differs: %v vs %v", idx, single.Pixels[idx], threaded.Pixels[idx])
		}
	}
}

func TestCreateWithMesh(t *testing.T) {
	ply := `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face 2
property list uchar int vertex_indices
end_header
-1 0 -1
1 0 -1
0 2 0
0 0 1
3 0 1 2
3 1 3 2
`
	path := filepath.Join(t.TempDir(), "tetra.ply")
	if err := os.WriteFile(path, []byte(ply), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	base, _ := Create("cornell")
	s, err := CreateWithMesh("cornell", path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.GetPrimitiveCount() != base.GetPrimitiveCount()+2 {
		t.Errorf("Expected 2 extra primitives, got %d vs %d", s.GetPrimitiveCount(), base.GetPrimitiveCount())
	}

	// Mesh is 200 units tall, standing on the floor at the box center
	bbox := s.Surfaces[len(s.Surfaces)-1].BoundingBox()
	if math.Abs(bbox.Max.Y-200) > 1e-3 || math.Abs(bbox.Min.Y) > 1e-3 {
		t.Errorf("Expected mesh spanning y=[0,200], got %v", bbox)
	}
	if math.Abs(bbox.Center().X-278) > 101 {
		t.Errorf("Expected mesh near the box center, got %v", bbox)
	}

	if _, err := CreateWithMesh("cornell", filepath.Join(t.TempDir(), "nope.ply")); err == nil {
		t.Error("Expected error for a missing mesh")
	}
}

func TestRenderSetup(t *testing.T) {
	s, _ := Create("plane-light")

	cfg := config.Default()
	camera, renderConfig, integratorConfig := s.RenderSetup(cfg)
	if camera.Width != 256 || camera.Height != 256 || camera.FOV != 50 {
		t.Errorf("Expected scene camera defaults, got %+v", camera)
	}
	if renderConfig.Width != 256 || renderConfig.SamplesPerPixel != cfg.SamplesPerPixel {
		t.Errorf("Unexpected render config %+v", renderConfig)
	}
	if integratorConfig.RussianRoulette != cfg.RussianRoulette || integratorConfig.MaxDepth != cfg.MaxDepth {
		t.Errorf("Unexpected integrator config %+v", integratorConfig)
	}

	cfg.Width, cfg.Height, cfg.FOV = 32, 16, 30
	camera, renderConfig, _ = s.RenderSetup(cfg)
	if camera.Width != 32 || camera.Height != 16 || camera.FOV != 30 || renderConfig.Height != 16 {
		t.Errorf("Expected overrides to apply, got %+v / %+v", camera, renderConfig)
	}
}

func TestNewRenderer_InvalidConfig(t *testing.T) {
	s, _ := Create("plane-light")

	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"zero spp", func(c *config.Config) { c.SamplesPerPixel = 0 }},
		{"rr above one", func(c *config.Config) { c.RussianRoulette = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.modify(&cfg)
			_, err := s.NewRenderer(cfg, nil)
			if !errors.Is(err, renderer.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
