package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// RenderSetup resolves cfg against the scene's camera. Zero width, height or
// FOV in cfg keep the scene's own values.
func (s *Scene) RenderSetup(cfg config.Config) (renderer.CameraConfig, renderer.Config, integrator.Config) {
	camera := s.Camera
	if cfg.Width > 0 {
		camera.Width = cfg.Width
	}
	if cfg.Height > 0 {
		camera.Height = cfg.Height
	}
	if cfg.FOV > 0 {
		camera.FOV = cfg.FOV
	}

	renderConfig := renderer.Config{
		Width:           camera.Width,
		Height:          camera.Height,
		SamplesPerPixel: cfg.SamplesPerPixel,
		Workers:         cfg.Workers,
		Seed:            cfg.Seed,
		Gamma:           renderer.DefaultGamma,
	}

	integratorConfig := integrator.DefaultConfig()
	integratorConfig.RussianRoulette = cfg.RussianRoulette
	integratorConfig.MaxDepth = cfg.MaxDepth

	return camera, renderConfig, integratorConfig
}

// NewRenderer builds a path-tracing renderer for the scene
func (s *Scene) NewRenderer(cfg config.Config, logger core.Logger) (*renderer.Renderer, error) {
	camera, renderConfig, integratorConfig := s.RenderSetup(cfg)

	if err := integratorConfig.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", renderer.ErrInvalidConfig, err)
	}
	if err := renderConfig.Validate(); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Printf("%s\n", s.Summary())
	}

	return renderer.NewRenderer(s, renderer.NewCamera(camera), integrator.NewPathTracingIntegrator(integratorConfig), renderConfig, logger), nil
}
