package renderer

import (
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/bvh"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Luminance weights of pure red, green and blue sum to 1, black adds 0
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 1.0
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestRenderStats_Table(t *testing.T) {
	stats := RenderStats{
		Width: 640, Height: 427, Samples: 100, MaxDepth: 50, Workers: 8,
		Objects: 12, Unbounded: 1,
		Tree:     bvh.Stats{Nodes: 21, Leaves: 11, MaxDepth: 5, AvgLeafDepth: 4.2},
		Duration: 1500 * time.Millisecond,
	}

	table := stats.Table()
	for _, want := range []string{"640x427", "12 (1 unbounded)", "21 (11 leaves)", "1.5s"} {
		if !strings.Contains(table, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, table)
		}
	}
}
