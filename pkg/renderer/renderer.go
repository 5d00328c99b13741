package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// ErrInvalidConfig is wrapped by every configuration error returned from Render
var ErrInvalidConfig = errors.New("invalid render config")

// Config contains rendering configuration
type Config struct {
	Width           int     // Image width in pixels
	Height          int     // Image height in pixels
	SamplesPerPixel int     // Integrator calls per pixel
	Workers         int     // Number of row bands rendered in parallel
	Seed            int64   // Base seed for the per-row samplers
	Gamma           float64 // Display exponent used when writing images
}

// DefaultConfig returns the classic Cornell box settings
func DefaultConfig() Config {
	return Config{
		Width:           784,
		Height:          784,
		SamplesPerPixel: 16,
		Workers:         config.DefaultWorkers(),
		Seed:            0,
		Gamma:           DefaultGamma,
	}
}

// Validate reports the first invalid field wrapped in ErrInvalidConfig
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel %d must be positive", ErrInvalidConfig, c.SamplesPerPixel)
	case c.Gamma <= 0:
		return fmt.Errorf("%w: gamma %v must be positive", ErrInvalidConfig, c.Gamma)
	}
	return nil
}

// Renderer drives an integrator over every pixel of the camera
type Renderer struct {
	scene      integrator.Scene
	camera     *Camera
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
	progress   ProgressFunc
}

// NewRenderer creates a renderer. logger may be nil.
func NewRenderer(scene integrator.Scene, camera *Camera, integ integrator.Integrator, config Config, logger core.Logger) *Renderer {
	if logger == nil {
		logger = NewDiscardLogger()
	}
	return &Renderer{
		scene:      scene,
		camera:     camera,
		integrator: integ,
		config:     config,
		logger:     logger,
	}
}

// SetProgress installs a progress reporter for subsequent renders
func (r *Renderer) SetProgress(progress ProgressFunc) {
	r.progress = progress
}

// Render traces SamplesPerPixel paths through every pixel and returns the
// averaged radiance. Rows are split into contiguous bands rendered in
// parallel; each row draws from its own sampler seeded from (Seed, row), so
// the image is identical for any worker count. Cancelling ctx stops the
// workers between rows and Render returns ctx.Err().
func (r *Renderer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	if err := r.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if r.camera == nil || r.camera.Width() != r.config.Width || r.camera.Height() != r.config.Height {
		return nil, RenderStats{}, fmt.Errorf("%w: camera does not match image size %dx%d", ErrInvalidConfig, r.config.Width, r.config.Height)
	}

	start := time.Now()
	bands := Bands(r.config.Height, r.config.Workers)
	framebuffer := NewFramebuffer(r.config.Width, r.config.Height)
	counter := NewProgress(r.config.Height, r.progress)

	r.logger.Printf("Rendering %dx%d at %d spp with %d workers (%d rows per band)\n",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel, len(bands), bands[0].Rows())

	pool := NewWorkerPool(r, len(bands), len(bands))
	pool.Start(ctx)
	for i, band := range bands {
		pool.SubmitTask(BandTask{Band: band, Framebuffer: framebuffer, Progress: counter, TaskID: i})
	}
	pool.Stop()

	stats := RenderStats{SamplesPerPixel: r.config.SamplesPerPixel, Workers: len(bands)}
	var firstErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
		stats.merge(result.Stats)
	}
	stats.Duration = time.Since(start)

	if firstErr != nil {
		return nil, stats, firstErr
	}

	counter.Finish()
	r.logger.Printf("Render completed in %v (%.0f samples/s, average luminance %.4f)\n",
		stats.Duration, stats.SamplesPerSecond(), CalculateAverageLuminance(framebuffer))

	return framebuffer, stats, nil
}

// renderBand renders every row of the band into fb
func (r *Renderer) renderBand(ctx context.Context, band Band, fb *Framebuffer, counter *Progress) (RenderStats, error) {
	var stats RenderStats
	for j := band.Start; j < band.End; j++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.merge(r.renderRow(j, fb))
		counter.Advance(1)
	}
	return stats, nil
}

// renderRow renders one row with a sampler owned by that row
func (r *Renderer) renderRow(j int, fb *Framebuffer) RenderStats {
	sampler := core.NewSeededSampler(rowSeed(r.config.Seed, j))
	spp := r.config.SamplesPerPixel
	weight := 1.0 / float64(spp)

	for i := 0; i < r.config.Width; i++ {
		ray := r.camera.GetRay(i, j)
		var color core.Vec3
		for k := 0; k < spp; k++ {
			color = color.Add(r.integrator.RayColor(ray, r.scene, sampler).Multiply(weight))
		}
		fb.Set(i, j, color)
	}

	return RenderStats{
		TotalPixels:  r.config.Width,
		TotalSamples: r.config.Width * spp,
	}
}

// rowSeed derives the seed for a row by running (seed, row) through the
// splitmix64 finalizer, so nearby (seed, row) pairs give unrelated streams
func rowSeed(seed int64, row int) int64 {
	z := splitmix64(uint64(seed))
	z = splitmix64(z ^ uint64(row))
	return int64(z)
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
