package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/publish"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the command-line flags that are not part of config.Config
type options struct {
	envFile string
	quiet   bool
	help    bool
}

func newFlagSet(cfg *config.Config, opts *options, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "Scene name (see -help)")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width (0 uses the scene's default)")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Image height (0 uses the scene's default)")
	fs.IntVar(&cfg.SamplesPerPixel, "spp", cfg.SamplesPerPixel, "Samples per pixel")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of worker goroutines")
	fs.Float64Var(&cfg.RussianRoulette, "rr", cfg.RussianRoulette, "Russian roulette continuation probability")
	fs.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "Maximum path depth")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	fs.StringVar(&cfg.Output, "out", cfg.Output, "Output file (.ppm, .png, .jpg); defaults to output/<scene>/render_<timestamp>.png")
	fs.StringVar(&cfg.MeshPath, "mesh", cfg.MeshPath, "Optional PLY or glTF mesh to place in the scene")
	fs.StringVar(&opts.envFile, "env", opts.envFile, "Environment file to load before applying flags")
	fs.BoolVar(&opts.quiet, "quiet", opts.quiet, "Suppress progress and log output")
	fs.BoolVar(&opts.help, "help", opts.help, "Show help information")
	return fs
}

// parseArgs resolves the configuration: defaults, then the environment, then
// flags that were set explicitly
func parseArgs(args []string, output io.Writer) (config.Config, options, error) {
	opts := options{envFile: ".env"}

	// First pass only finds -env
	firstPass := config.Default()
	if err := newFlagSet(&firstPass, &opts, io.Discard).Parse(args); err != nil {
		return config.Config{}, opts, err
	}

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return config.Config{}, opts, err
	}

	if err := newFlagSet(&cfg, &opts, output).Parse(args); err != nil {
		return config.Config{}, opts, err
	}
	return cfg, opts, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, opts, err := parseArgs(args, stdout)
	if err != nil {
		return err
	}

	if opts.help {
		printHelp(stdout, args)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var logger core.Logger = renderer.NewDiscardLogger()
	if !opts.quiet {
		logger = renderer.NewDefaultLogger()
		logger.Printf("Starting Path Tracer...\n")
	}

	sceneObj, err := createScene(cfg.Scene, cfg.MeshPath)
	if err != nil {
		return err
	}

	r, err := sceneObj.NewRenderer(cfg, logger)
	if err != nil {
		return err
	}
	if !opts.quiet {
		r.SetProgress(renderer.ConsoleProgress(stdout))
	}

	fb, stats, err := r.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Traced %d samples over %d pixels in %v\n", stats.TotalSamples, stats.TotalPixels, stats.Duration)

	output := cfg.Output
	if output == "" {
		output = createOutputPath(cfg.Scene, time.Now())
	}
	if err := imageio.Save(output, fb, renderer.DefaultGamma); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", output)

	if cfg.PublishEnabled() {
		url, err := publishImage(ctx, cfg, output, logger)
		if err != nil {
			return err
		}
		logger.Printf("Published to %s\n", url)
	}

	return nil
}

// createScene builds a built-in scene, optionally with a mesh placed in it
func createScene(name, meshPath string) (*scene.Scene, error) {
	return scene.CreateWithMesh(name, meshPath)
}

// createOutputPath returns output/<scene>/render_<timestamp>.png
func createOutputPath(sceneName string, now time.Time) string {
	filename := fmt.Sprintf("render_%s.png", now.Format("20060102_150405"))
	return filepath.Join("output", sceneName, filename)
}

func publishImage(ctx context.Context, cfg config.Config, path string, logger core.Logger) (string, error) {
	format, err := imageio.FormatFromFilename(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read rendered image: %w", err)
	}

	publisher, err := publish.NewS3Publisher(cfg, logger)
	if err != nil {
		return "", err
	}
	key := filepath.ToSlash(filepath.Join(cfg.Scene, filepath.Base(path)))
	return publisher.Publish(ctx, key, data, format.ContentType())
}

func printHelp(w io.Writer, args []string) {
	fmt.Fprintln(w, "Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	cfg := config.Default()
	newFlagSet(&cfg, &options{}, w).PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	if scenes, err := scene.ListAllScenes("meshes"); err == nil {
		for _, group := range scenes.Groups {
			for _, info := range group.Scenes {
				fmt.Fprintf(w, "  %-16s %s\n", info.ID, info.Description)
			}
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment: PATHTRACE_* and S3_* variables, optionally from a .env file (-env)")
}
