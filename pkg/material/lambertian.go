package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// NewLambertian creates a diffuse material colored by tex
func NewLambertian(tex texture.Texture) Material {
	return Material{Kind: KindLambertian, Texture: tex}
}

// NewLambertianColor creates a diffuse material with a solid color
func NewLambertianColor(albedo core.Color) Material {
	return NewLambertian(texture.Solid(albedo))
}

func (m *Material) scatterLambertian(hit geometry.HitRecord, random *rand.Rand) Scatter {
	return Scatter{
		Ray:         core.NewRay(hit.Point, diffuseDirection(hit.Normal, random)),
		Attenuation: m.Texture.Value(hit.U, hit.V, hit.Point),
	}
}

// diffuseDirection returns normal + a random unit vector, falling back to the
// normal when the two nearly cancel out.
func diffuseDirection(normal core.Vec3, random *rand.Rand) core.Vec3 {
	direction := normal.Add(core.RandomUnitVector(random))
	if direction.NearZero() {
		return normal
	}
	return direction
}
