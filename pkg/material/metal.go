package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// NewMetal creates a new metal material. Fuzz is clamped to [0, 1].
func NewMetal(albedo core.Color, fuzz float64) Material {
	return Material{Kind: KindMetal, Albedo: albedo, Fuzz: core.Clamp(fuzz, 0, 1)}
}

// scatterMetal mirrors the unit incoming direction about the normal, so the
// scattered direction has unit length before fuzz whatever the ray's length.
func (m *Material) scatterMetal(rayIn core.Ray, hit geometry.HitRecord, random *rand.Rand) Scatter {
	reflected := reflect(rayIn.Direction.Normalize(), hit.Normal)

	// Perturb the mirror direction for brushed surfaces
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(random).Multiply(m.Fuzz))
	}

	return Scatter{
		Ray:         core.NewRay(hit.Point, reflected),
		Attenuation: m.Albedo,
	}
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
