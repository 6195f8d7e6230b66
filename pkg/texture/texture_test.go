package texture

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
)

func TestSolid(t *testing.T) {
	tex := Solid(core.NewVec3(0.1, 0.2, 0.3))
	if got := tex.Value(0.5, 0.5, core.NewVec3(10, -3, 2)); !got.Equals(core.NewVec3(0.1, 0.2, 0.3)) {
		t.Errorf("Expected constant color, got %v", got)
	}
}

func TestChecker(t *testing.T) {
	odd := core.NewVec3(0, 0, 0)
	even := core.NewVec3(1, 1, 1)
	tex := Checker(1, Solid(odd), Solid(even))

	tests := []struct {
		name     string
		p        core.Point
		expected core.Color
	}{
		{"All sines positive", core.NewVec3(1, 1, 1), even},
		{"One sine negative", core.NewVec3(-1, 1, 1), odd},
		{"Two sines negative", core.NewVec3(-1, -1, 1), even},
		{"Zero product", core.NewVec3(0, 1, 1), even},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tex.Value(0, 0, tt.p); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestChecker_Nested(t *testing.T) {
	inner := Checker(1, Solid(core.NewVec3(1, 0, 0)), Solid(core.NewVec3(0, 1, 0)))
	outer := Checker(1, inner, Solid(core.NewVec3(0, 0, 1)))

	// (-1, 1, 1) is odd for both checkers
	if got := outer.Value(0, 0, core.NewVec3(-1, 1, 1)); !got.Equals(core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected nested odd color, got %v", got)
	}
}

func TestNoise_DeterministicPerSeed(t *testing.T) {
	a := Noise(4, 7)
	b := Noise(4, 7)
	c := Noise(4, 8)

	differs := false
	for i := 0; i < 50; i++ {
		p := core.NewVec3(float64(i)*0.37, -float64(i)*0.11, float64(i)*0.23)
		va, vb, vc := a.Value(0, 0, p), b.Value(0, 0, p), c.Value(0, 0, p)
		if !va.Equals(vb) {
			t.Fatalf("Same seed produced %v and %v at %v", va, vb, p)
		}
		if !va.Equals(vc) {
			differs = true
		}
		if va.X < 0 || va.X > 1 || va.X != va.Y || va.Y != va.Z {
			t.Fatalf("Expected gray value in [0, 1], got %v", va)
		}
	}
	if !differs {
		t.Error("Expected different seeds to produce different patterns")
	}
}

func TestPerlin_LatticeIsZero(t *testing.T) {
	// Gradient noise vanishes at integer lattice points, including negative ones
	p := Noise(1, 42).perlin
	for _, point := range []core.Point{
		core.NewVec3(0, 0, 0),
		core.NewVec3(3, -2, 5),
		core.NewVec3(-1, -1, -1),
	} {
		if n := p.Noise(point); math.Abs(n) > 1e-12 {
			t.Errorf("Expected zero noise at %v, got %f", point, n)
		}
	}
}

func TestImage_NearestLookup(t *testing.T) {
	data := &loaders.ImageData{
		Width:  2,
		Height: 2,
		Pixels: []core.Color{
			core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), // top row
			core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 1), // bottom row
		},
	}
	tex := Image("mem", data)

	tests := []struct {
		name     string
		u, v     float64
		expected core.Color
	}{
		{"Bottom left", 0, 0, core.NewVec3(0, 0, 1)},
		{"Top left", 0, 1, core.NewVec3(1, 0, 0)},
		{"Top right", 1, 1, core.NewVec3(0, 1, 0)},
		{"Bottom right", 1, 0, core.NewVec3(1, 1, 1)},
		{"Clamped outside", 5, -3, core.NewVec3(1, 1, 1)},
		{"NaN reads bottom left", math.NaN(), math.NaN(), core.NewVec3(0, 0, 1)},
		{"Infinite reads bottom left", math.Inf(1), math.Inf(-1), core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tex.Value(tt.u, tt.v, core.Vec3{}); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestImage_Missing(t *testing.T) {
	tex := Texture{Kind: KindImage}
	if got := tex.Value(0.5, 0.5, core.Vec3{}); !got.Equals(missingImage) {
		t.Errorf("Expected placeholder color, got %v", got)
	}

	if _, err := LoadImage("does/not/exist.png"); err == nil {
		t.Error("Expected error loading missing image")
	}
}

func TestPixelIndex(t *testing.T) {
	tests := []struct {
		f        float64
		n        int
		expected int
	}{
		{0, 4, 0},
		{1, 4, 3},
		{0.5, 4, 1},
		{0.7, 1, 0},
		{1.5, 4, 3},
		{-1, 4, 0},
	}
	for _, tt := range tests {
		if got := pixelIndex(tt.f, tt.n); got != tt.expected {
			t.Errorf("pixelIndex(%f, %d): expected %d, got %d", tt.f, tt.n, tt.expected, got)
		}
	}
}
