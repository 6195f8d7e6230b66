package scene

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestBuiltins_AllBuild(t *testing.T) {
	for _, b := range Builtins() {
		t.Run(b.Name, func(t *testing.T) {
			d := b.Generate(rand.New(rand.NewSource(1)))
			if d.Camera == nil {
				t.Error("Expected a suggested camera")
			}
			s, err := d.Build("")
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if s.Len() != len(d.Objects) {
				t.Errorf("Expected %d objects, got %d", len(d.Objects), s.Len())
			}
		})
	}
}

func TestBuiltins_DeterministicForSeed(t *testing.T) {
	a := Random(rand.New(rand.NewSource(42)), false)
	b := Random(rand.New(rand.NewSource(42)), false)
	if !reflect.DeepEqual(a, b) {
		t.Error("Expected identical scenes for identical seeds")
	}
}

func TestLookupBuiltin(t *testing.T) {
	if b, err := LookupBuiltin("cornell"); err != nil || b.Name != "cornell" {
		t.Errorf("LookupBuiltin(cornell) = %v, %v", b.Name, err)
	}
	if _, err := LookupBuiltin("teapot"); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestRandom_BallSizes(t *testing.T) {
	for _, night := range []bool{false, true} {
		d := Random(rand.New(rand.NewSource(7)), night)

		var balls []SphereSpec
		for _, obj := range d.Objects {
			if obj.Shape.Sphere != nil {
				balls = append(balls, *obj.Shape.Sphere)
			}
		}
		if len(balls) < 100 {
			t.Fatalf("Expected a dense grid of balls, got %d", len(balls))
		}

		for i, ball := range balls {
			if ball.Radius < minFittedRadius || ball.Radius > 1 {
				t.Errorf("Ball %d radius %f out of range", i, ball.Radius)
			}
		}
	}
}

func TestRandom_NightHasLightsAndNoSky(t *testing.T) {
	d := Random(rand.New(rand.NewSource(3)), true)
	if d.Skybox.Kind != "none" {
		t.Errorf("Expected no sky at night, got %q", d.Skybox.Kind)
	}

	lights := 0
	for _, obj := range d.Objects {
		if obj.Material.FairyLight != nil {
			lights++
		}
	}
	if lights < 2 {
		t.Errorf("Expected several fairy lights, got %d", lights)
	}

	day := Random(rand.New(rand.NewSource(3)), false)
	for _, obj := range day.Objects {
		if obj.Material.FairyLight != nil {
			t.Fatal("Expected no lights in the daytime scene")
		}
	}
}

func TestChooseWeighted(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	weights := []float64{1, 0, 3}
	counts := make([]int, len(weights))
	for i := 0; i < 4000; i++ {
		counts[chooseWeighted(random, weights)]++
	}
	if counts[1] != 0 {
		t.Errorf("Zero weight chosen %d times", counts[1])
	}
	if counts[2] < 2*counts[0] {
		t.Errorf("Expected weight 3 to dominate weight 1, got %v", counts)
	}
}

func TestBallFitter(t *testing.T) {
	f := &ballFitter{}
	f.fit(core.NewVec3(0, 1, 0), 1)

	center, radius := f.fit(core.NewVec3(1.5, 0.25, 0), 0.25)
	if math.Abs(radius-0.25) > 1e-9 || math.Abs(center.Y-0.25) > 1e-9 {
		t.Errorf("Expected ball to stay unchanged when not overlapping, got %v r=%f", center, radius)
	}

	center, radius = f.fit(core.NewVec3(1.2, 0.5, 0), 0.5)
	// Limited by the second ball rather than the first
	expected := math.Sqrt(0.3*0.3+0.25*0.25) - 0.25
	if math.Abs(radius-expected) > 1e-9 {
		t.Errorf("Expected overlapping ball to shrink to %f, got %f", expected, radius)
	}
	if math.Abs(center.Y-expected) > 1e-9 {
		t.Errorf("Expected shrunk ball to drop by the same amount, got center %v", center)
	}
}
