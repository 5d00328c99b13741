package imageio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// WritePPM writes the framebuffer as a binary PPM (P6): header
// "P6\n<w> <h>\n255\n" followed by row-major RGB bytes
func WritePPM(w io.Writer, fb *renderer.Framebuffer, gamma float64) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("failed to write ppm header: %w", err)
	}

	row := make([]byte, 3*fb.Width)
	for j := 0; j < fb.Height; j++ {
		for i := 0; i < fb.Width; i++ {
			c := fb.At(i, j)
			row[3*i] = renderer.ToByte(c.X, gamma)
			row[3*i+1] = renderer.ToByte(c.Y, gamma)
			row[3*i+2] = renderer.ToByte(c.Z, gamma)
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("failed to write ppm row %d: %w", j, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush ppm: %w", err)
	}
	return nil
}
