// Package texture provides the color sources materials sample at a hit point.
package texture

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
)

// turbulenceDepth is the number of noise octaves used by the marble texture
const turbulenceDepth = 7

// missingImage is returned by image textures without pixel data
var missingImage = core.NewVec3(0, 1, 1)

// Kind identifies which variant a Texture holds
type Kind int

const (
	KindSolid Kind = iota
	KindChecker
	KindNoise
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindChecker:
		return "checker"
	case KindNoise:
		return "noise"
	case KindImage:
		return "image"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Texture is a closed set of color sources. Only the fields for Kind are meaningful.
type Texture struct {
	Kind Kind

	// Solid
	Color core.Color

	// Checker
	Size      float64
	Odd, Even *Texture

	// Noise
	Scale  float64
	Seed   int64
	perlin *Perlin

	// Image
	Path  string
	image *loaders.ImageData
}

// Solid returns a constant color texture
func Solid(c core.Color) Texture {
	return Texture{Kind: KindSolid, Color: c}
}

// Checker returns a 3D checker pattern alternating between odd and even
func Checker(size float64, odd, even Texture) Texture {
	return Texture{Kind: KindChecker, Size: size, Odd: &odd, Even: &even}
}

// Noise returns a Perlin marble texture. The same seed always produces the same pattern.
func Noise(scale float64, seed int64) Texture {
	return Texture{
		Kind:   KindNoise,
		Scale:  scale,
		Seed:   seed,
		perlin: NewPerlin(rand.New(rand.NewSource(seed))),
	}
}

// Image returns a texture backed by already decoded pixels
func Image(path string, data *loaders.ImageData) Texture {
	return Texture{Kind: KindImage, Path: path, image: data}
}

// LoadImage decodes the file at path into an image texture
func LoadImage(path string) (Texture, error) {
	data, err := loaders.LoadImage(path)
	if err != nil {
		return Texture{}, fmt.Errorf("failed to load image texture: %w", err)
	}
	return Image(path, data), nil
}

// Value returns the texture color at surface coordinates (u, v) and world point p
func (t *Texture) Value(u, v float64, p core.Point) core.Color {
	switch t.Kind {
	case KindSolid:
		return t.Color
	case KindChecker:
		sines := math.Sin(t.Size*p.X) * math.Sin(t.Size*p.Y) * math.Sin(t.Size*p.Z)
		if sines < 0 {
			return t.Odd.Value(u, v, p)
		}
		return t.Even.Value(u, v, p)
	case KindNoise:
		return t.marble(p)
	case KindImage:
		return t.imageValue(u, v)
	}
	return core.Color{}
}

// marble bands the z axis with sine stripes distorted by turbulence
func (t *Texture) marble(p core.Point) core.Color {
	turb := 0.0
	if t.perlin != nil {
		turb = 10 * t.perlin.Turbulence(p, turbulenceDepth)
	}
	return core.Splat(0.5 * (1 + math.Sin(t.Scale*p.Z+turb)))
}

// imageValue does a nearest-pixel lookup with v=0 at the bottom row.
// Non-finite coordinates read the corner pixel.
func (t *Texture) imageValue(u, v float64) core.Color {
	if t.image == nil {
		return missingImage
	}
	u = core.Clamp(finiteOrZero(u), 0, 1)
	v = 1 - core.Clamp(finiteOrZero(v), 0, 1)

	i := pixelIndex(u, t.image.Width)
	j := pixelIndex(v, t.image.Height)
	return t.image.At(i, j)
}

func finiteOrZero(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// pixelIndex maps f in [0, 1] onto [0, n-1]
func pixelIndex(f float64, n int) int {
	i := int(f * float64(n-1))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
