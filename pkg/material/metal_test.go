package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	random := rand.New(rand.NewSource(42))

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := geometry.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	for i := 0; i < 10; i++ {
		scatter, ok := metal.Scatter(rayIn, hit, random)
		if !ok {
			t.Fatal("Metal should scatter")
		}
		if scatter.Ray.Direction.Subtract(expected).Length() > 1e-10 {
			t.Fatalf("Perfect reflection failed: expected %v, got %v", expected, scatter.Ray.Direction)
		}
		if !scatter.Attenuation.Equals(albedo) {
			t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
		}
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.5)
	random := rand.New(rand.NewSource(42))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := geometry.HitRecord{Normal: core.NewVec3(0, 0, 1), FrontFace: true}
	mirror := core.NewVec3(0, 0, 1)

	for i := 0; i < 200; i++ {
		scatter, _ := metal.Scatter(rayIn, hit, random)
		// Fuzz perturbs by at most the fuzz radius
		if d := scatter.Ray.Direction.Subtract(mirror).Length(); d > 0.5+1e-9 {
			t.Fatalf("Perturbation %f exceeds fuzz radius", d)
		}
	}
}

func TestReflect(t *testing.T) {
	got := reflect(core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0))
	if !got.Equals(core.NewVec3(1, 1, 0)) {
		t.Errorf("Expected (1, 1, 0), got %v", got)
	}
}

func TestMetal_NonUnitIncomingReflectsUnitDirection(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 0)
	random := rand.New(rand.NewSource(1))

	rayIn := core.NewRay(core.NewVec3(0, 3, 3), core.NewVec3(0, -3, -3))
	hit := geometry.HitRecord{Normal: core.NewVec3(0, 0, 1), FrontFace: true}

	scatter, ok := metal.Scatter(rayIn, hit, random)
	if !ok {
		t.Fatal("Metal should scatter")
	}
	expected := core.NewVec3(0, -1, 1).Normalize()
	if scatter.Ray.Direction.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Expected unit mirror direction %v, got %v", expected, scatter.Ray.Direction)
	}
}
