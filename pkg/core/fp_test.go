package core

import (
	"math"
	"testing"
)

func TestFMinFMax_NaN(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name    string
		a, b    float64
		wantMin float64
		wantMax float64
	}{
		{"Ordinary", 1, 2, 1, 2},
		{"Reversed", 2, 1, 1, 2},
		{"NaN first", nan, 3, 3, 3},
		{"NaN second", 3, nan, 3, 3},
		{"Infinities", math.Inf(-1), math.Inf(1), math.Inf(-1), math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FMin(tt.a, tt.b); got != tt.wantMin {
				t.Errorf("FMin: expected %f, got %f", tt.wantMin, got)
			}
			if got := FMax(tt.a, tt.b); got != tt.wantMax {
				t.Errorf("FMax: expected %f, got %f", tt.wantMax, got)
			}
		})
	}

	if !math.IsNaN(FMin(nan, nan)) {
		t.Error("Expected NaN when both operands are NaN")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 1) != 0 || Clamp(2, 0, 1) != 1 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp returned unexpected values")
	}
}
