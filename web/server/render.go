package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Request limits
const (
	maxImageSize = 2000
	maxSamples   = 10000
	maxWorkers   = 256
	maxDepth     = 1000
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string         // Built-in scene name or "mesh:<name>"
	Config config.Config  // Render settings merged over the server defaults
	Format imageio.Format // Response encoding
	Thumb  int            // Thumbnail width, 0 for full size
}

// handleRender renders synchronously and returns the encoded image. The
// request context cancels the render when the client disconnects.
func (s *Server) handleRender(c echo.Context) error {
	req, err := s.parseRenderRequest(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	logger := NewWebLogger(renderID, c.Logger())

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	r, err := sceneObj.NewRenderer(req.Config, logger)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, renderer.ErrInvalidConfig) {
			status = http.StatusBadRequest
		}
		return jsonError(c, status, err.Error())
	}

	ctx := c.Request().Context()
	fb, stats, err := r.Render(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Printf("Render cancelled: %v\n", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
			"log":   logger.Messages(),
		})
	}

	var buf bytes.Buffer
	if req.Thumb > 0 {
		err = imageio.EncodeImage(&buf, imageio.Thumbnail(fb, uint(req.Thumb), renderer.DefaultGamma), req.Format)
	} else {
		err = imageio.Encode(&buf, fb, req.Format, renderer.DefaultGamma)
	}
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}

	header := c.Response().Header()
	header.Set("X-Render-Id", renderID)
	header.Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	header.Set("X-Samples-Per-Second", strconv.FormatFloat(stats.SamplesPerSecond(), 'f', 0, 64))
	return c.Blob(http.StatusOK, req.Format.ContentType(), buf.Bytes())
}

// parseRenderRequest parses and validates query parameters
func (s *Server) parseRenderRequest(c echo.Context) (*RenderRequest, error) {
	query := c.QueryParams()
	req := &RenderRequest{Config: s.defaults}

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = s.defaults.Scene
	}
	req.Config.Scene = req.Scene

	var err error
	cfg := &req.Config
	if cfg.Width, err = parseIntParam(query, "width", cfg.Width, 0, maxImageSize); err != nil {
		return nil, err
	}
	if cfg.Height, err = parseIntParam(query, "height", cfg.Height, 0, maxImageSize); err != nil {
		return nil, err
	}
	if cfg.SamplesPerPixel, err = parseIntParam(query, "spp", cfg.SamplesPerPixel, 1, maxSamples); err != nil {
		return nil, err
	}
	if cfg.Workers, err = parseIntParam(query, "workers", cfg.Workers, 1, maxWorkers); err != nil {
		return nil, err
	}
	if cfg.MaxDepth, err = parseIntParam(query, "maxDepth", cfg.MaxDepth, 1, maxDepth); err != nil {
		return nil, err
	}
	if cfg.RussianRoulette, err = parseFloatParam(query, "rr", cfg.RussianRoulette, 0.01, 1); err != nil {
		return nil, err
	}
	if value := query.Get("seed"); value != "" {
		if cfg.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	formatName := query.Get("format")
	if formatName == "" {
		formatName = string(imageio.FormatPNG)
	}
	if req.Format, err = imageio.ParseFormat(formatName); err != nil {
		return nil, err
	}

	if req.Thumb, err = parseIntParam(query, "thumb", 0, 0, maxImageSize); err != nil {
		return nil, err
	}
	if req.Thumb > 0 && req.Format == imageio.FormatPPM {
		return nil, fmt.Errorf("thumb requires png or jpeg format")
	}

	// Performance warning
	if cfg.Width*cfg.Height > 800*600 && cfg.SamplesPerPixel > 100 {
		c.Logger().Warnf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// createScene resolves a built-in scene name or a "mesh:<name>" ID from the
// mesh directory. Meshes are shown in the Cornell box.
func (s *Server) createScene(name string) (*scene.Scene, error) {
	if !strings.HasPrefix(name, "mesh:") {
		return scene.Create(name)
	}

	meshes, err := scene.ListMeshes(s.meshDir)
	if err != nil {
		return nil, err
	}
	for _, mesh := range meshes {
		if mesh.ID == name {
			return scene.CreateWithMesh("cornell", mesh.FilePath)
		}
	}
	return nil, fmt.Errorf("unknown mesh %q", strings.TrimPrefix(name, "mesh:"))
}
