package renderer

import (
	"bytes"
	"fmt"
	"image"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-pathtracer/pkg/bvh"
	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width, Height int
	Samples       int
	MaxDepth      int
	Workers       int
	Objects       int       // total objects in the scene
	Unbounded     int       // objects tested outside the BVH
	Tree          bvh.Stats // shape of the BVH
	Duration      time.Duration
}

// TotalSamples returns the number of camera rays traced
func (s RenderStats) TotalSamples() int {
	return s.Width * s.Height * s.Samples
}

// Table renders the statistics as a text table
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Stat", "Value"})
	table.Append([]string{"Image", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"Samples per pixel", fmt.Sprintf("%d", s.Samples)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", s.MaxDepth)})
	table.Append([]string{"Workers", fmt.Sprintf("%d", s.Workers)})
	table.Append([]string{"Objects", fmt.Sprintf("%d (%d unbounded)", s.Objects, s.Unbounded)})
	table.Append([]string{"BVH nodes", fmt.Sprintf("%d (%d leaves)", s.Tree.Nodes, s.Tree.Leaves)})
	table.Append([]string{"BVH depth", fmt.Sprintf("%d max, %.1f avg leaf", s.Tree.MaxDepth, s.Tree.AvgLeafDepth)})
	table.SetFooter([]string{"Render time", s.Duration.Round(time.Millisecond).String()})
	table.Render()
	return buf.String()
}

// CalculateAverageLuminance returns the mean luminance of an 8-bit image, in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := core.NewVec3(float64(r>>8), float64(g>>8), float64(b>>8)).Multiply(1.0 / 255)
			total += c.Luminance()
		}
	}
	return total / float64(bounds.Dx()*bounds.Dy())
}
