package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// NewDiffuseLight creates a light that emits tex uniformly and never scatters
func NewDiffuseLight(tex texture.Texture) Material {
	return Material{Kind: KindDiffuseLight, Texture: tex}
}

// NewFairyLight creates a light that both emits and diffusely scatters. Emission
// falls off with the cosine between the surface normal and the viewing ray.
func NewFairyLight(tex texture.Texture) Material {
	return Material{Kind: KindFairyLight, Texture: tex}
}

func (m *Material) scatterFairyLight(hit geometry.HitRecord, random *rand.Rand) Scatter {
	return Scatter{
		Ray:         core.NewRay(hit.Point, diffuseDirection(hit.Normal, random)),
		Attenuation: m.Texture.Value(hit.U, hit.V, hit.Point).Normalize(),
	}
}

func (m *Material) emitFairyLight(rayIn core.Ray, hit geometry.HitRecord) core.Color {
	length := rayIn.Direction.Length()
	if length == 0 {
		return core.Color{}
	}
	scale := math.Max(0, hit.Normal.Dot(rayIn.Direction.Negate())) / length
	return m.Texture.Value(hit.U, hit.V, hit.Point).Multiply(scale)
}
