package renderer

import "github.com/df07/go-pathtracer/pkg/core"

// Framebuffer holds unnormalized color sums, one row per scanline with row 0 at
// the bottom of the image
type Framebuffer struct {
	Width, Height int
	Pixels        []core.Color
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// Row returns the pixels of scanline y. Distinct rows never alias, so workers
// may fill different rows concurrently.
func (f *Framebuffer) Row(y int) []core.Color {
	return f.Pixels[y*f.Width : (y+1)*f.Width]
}

// At returns the accumulated color at (x, y)
func (f *Framebuffer) At(x, y int) core.Color {
	return f.Pixels[y*f.Width+x]
}
