package imageio

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Format names an output encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// FormatFromFilename picks the encoding from the file extension
func FormatFromFilename(path string) (Format, error) {
	if strings.EqualFold(filepath.Ext(path), ".ppm") {
		return FormatPPM, nil
	}
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "", fmt.Errorf("unsupported image format for %q: %w", path, err)
	}
	switch f {
	case imaging.PNG:
		return FormatPNG, nil
	case imaging.JPEG:
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("unsupported image format for %q", path)
}

// ParseFormat parses a format name such as "png" or "ppm"
func ParseFormat(name string) (Format, error) {
	return FormatFromFilename("image." + strings.ToLower(name))
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "image/x-portable-pixmap"
	}
}

// Encode writes the framebuffer in the requested format
func Encode(w io.Writer, fb *renderer.Framebuffer, format Format, gamma float64) error {
	if format == FormatPPM {
		return WritePPM(w, fb, gamma)
	}
	return EncodeImage(w, fb.ToImage(gamma), format)
}

// EncodeImage writes an already converted image as PNG or JPEG
func EncodeImage(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case FormatPNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case FormatJPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(95))
	default:
		return fmt.Errorf("cannot encode %q as a raster image", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// Save writes the framebuffer to path. The image is written to a temporary
// file in the same directory and renamed into place, so a failed write never
// leaves a partial file at path.
func Save(path string, fb *renderer.Framebuffer, gamma float64) error {
	format, err := FormatFromFilename(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err := Encode(tmp, fb, format, gamma); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move image into place: %w", err)
	}
	committed = true
	return nil
}

// Thumbnail converts the framebuffer and scales it to the given width,
// keeping the aspect ratio
func Thumbnail(fb *renderer.Framebuffer, width uint, gamma float64) image.Image {
	img := fb.ToImage(gamma)
	if width == 0 || int(width) >= fb.Width {
		return img
	}
	return resize.Resize(width, 0, img, resize.Bilinear)
}
