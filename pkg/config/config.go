// Package config collects every tunable of a render: scene selection, image
// size, sampling, output and publishing. Values come from defaults, then the
// environment (optionally seeded from a .env file), then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/cpu"
)

// Config holds the settings shared by the CLI and the web server
type Config struct {
	Scene           string  // Built-in scene name
	Width           int     // Image width, 0 uses the scene's camera
	Height          int     // Image height, 0 uses the scene's camera
	SamplesPerPixel int     // Paths traced per pixel
	Workers         int     // Parallel row bands
	RussianRoulette float64 // Path continuation probability
	MaxDepth        int     // Hard bounce limit
	Seed            int64   // Base seed for the row samplers
	FOV             float64 // Vertical field of view in degrees, 0 uses the scene's camera
	Output          string  // Output image path, empty picks a timestamped name
	MeshPath        string  // Optional PLY/glTF mesh placed in the scene

	S3Bucket    string // Publishing is enabled when set
	S3Region    string
	S3Endpoint  string
	S3Prefix    string
	S3AccessKey string
	S3SecretKey string
}

// Default returns the baseline configuration
func Default() Config {
	return Config{
		Scene:           "cornell",
		SamplesPerPixel: 16,
		Workers:         DefaultWorkers(),
		RussianRoulette: 0.8,
		MaxDepth:        50,
		S3Region:        "us-east-1",
	}
}

// DefaultWorkers returns the logical CPU count
func DefaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Load builds a configuration from defaults and the environment. A non-empty
// envFile is read first; a missing file is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return FromEnv(Default())
}

// FromEnv overrides fields of base with any environment variables that are set
func FromEnv(base Config) (Config, error) {
	cfg := base

	stringVars := []struct {
		key   string
		field *string
	}{
		{"PATHTRACE_SCENE", &cfg.Scene},
		{"PATHTRACE_OUTPUT", &cfg.Output},
		{"PATHTRACE_MESH", &cfg.MeshPath},
		{"S3_BUCKET", &cfg.S3Bucket},
		{"S3_REGION", &cfg.S3Region},
		{"S3_ENDPOINT", &cfg.S3Endpoint},
		{"S3_PREFIX", &cfg.S3Prefix},
		{"S3_ACCESS_KEY", &cfg.S3AccessKey},
		{"S3_SECRET_KEY", &cfg.S3SecretKey},
	}
	for _, s := range stringVars {
		if value, ok := os.LookupEnv(s.key); ok {
			*s.field = value
		}
	}

	ints := []struct {
		key   string
		field *int
	}{
		{"PATHTRACE_WIDTH", &cfg.Width},
		{"PATHTRACE_HEIGHT", &cfg.Height},
		{"PATHTRACE_SPP", &cfg.SamplesPerPixel},
		{"PATHTRACE_WORKERS", &cfg.Workers},
		{"PATHTRACE_MAX_DEPTH", &cfg.MaxDepth},
	}
	for _, i := range ints {
		if value, ok := os.LookupEnv(i.key); ok {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return base, fmt.Errorf("invalid %s: %q", i.key, value)
			}
			*i.field = parsed
		}
	}

	floats := []struct {
		key   string
		field *float64
	}{
		{"PATHTRACE_RR", &cfg.RussianRoulette},
		{"PATHTRACE_FOV", &cfg.FOV},
	}
	for _, f := range floats {
		if value, ok := os.LookupEnv(f.key); ok {
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return base, fmt.Errorf("invalid %s: %q", f.key, value)
			}
			*f.field = parsed
		}
	}

	if value, ok := os.LookupEnv("PATHTRACE_SEED"); ok {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return base, fmt.Errorf("invalid PATHTRACE_SEED: %q", value)
		}
		cfg.Seed = parsed
	}

	return cfg, nil
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	switch {
	case c.Scene == "":
		return fmt.Errorf("scene must be set")
	case c.Width < 0:
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	case c.Height < 0:
		return fmt.Errorf("height must not be negative, got %d", c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	case c.RussianRoulette <= 0 || c.RussianRoulette > 1:
		return fmt.Errorf("russian roulette must be in (0,1], got %g", c.RussianRoulette)
	case c.MaxDepth <= 0:
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	case c.FOV < 0 || c.FOV >= 180:
		return fmt.Errorf("fov must be in [0,180), got %g", c.FOV)
	}
	return nil
}

// PublishEnabled reports whether rendered images should be uploaded
func (c Config) PublishEnabled() bool {
	return c.S3Bucket != ""
}
