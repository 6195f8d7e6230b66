package renderer

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrUnsupportedFormat is returned when an output extension has no encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

// maxChannel keeps 1.0 from rounding up past 255
const maxChannel = 0.999

// ToImage averages the framebuffer over samples, applies gamma 2 and flips it
// so the first image row is the top of the frame
func ToImage(fb *Framebuffer, samples int) *image.RGBA {
	if samples <= 0 {
		samples = 1
	}
	scale := 1.0 / float64(samples)

	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		row := fb.Row(y)
		for x, c := range row {
			img.SetRGBA(x, fb.Height-1-y, toRGBA(c.Multiply(scale)))
		}
	}
	return img
}

// toRGBA gamma corrects a linear color. Negative components clamp to black.
func toRGBA(c core.Color) color.RGBA {
	g := c.Clamp(0, math.MaxFloat64).Sqrt()
	return color.RGBA{
		R: channel(g.X),
		G: channel(g.Y),
		B: channel(g.Z),
		A: 255,
	}
}

// channel scales a gamma corrected value to 8 bits. NaN maps to 0.
func channel(v float64) uint8 {
	if math.IsNaN(v) {
		v = 0
	}
	return uint8(256 * core.Clamp(v, 0, maxChannel))
}

// SaveImage writes img to path, choosing the encoder from the extension:
// .png, .bmp, .tif/.tiff or .ppm
func SaveImage(path string, img image.Image) error {
	encode, err := encoderFor(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := encode(w, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func encoderFor(path string) (func(io.Writer, image.Image) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	case ".ppm":
		return WritePPM, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// WritePPM writes img as a plain-text (P3) PPM
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	if _, err := fmt.Fprintf(w, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if _, err := fmt.Fprintf(w, "%d %d %d\n", r>>8, g>>8, b>>8); err != nil {
				return err
			}
		}
	}
	return nil
}
