// Package material decides how light scatters off and is emitted by surfaces.
package material

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// Kind identifies which variant a Material holds
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
	KindDiffuseLight
	KindFairyLight
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	case KindDiffuseLight:
		return "diffuse_light"
	case KindFairyLight:
		return "fairy_light"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Material is a closed set of surface models. Only the fields for Kind are meaningful.
type Material struct {
	Kind Kind

	// Lambertian, DiffuseLight, FairyLight
	Texture texture.Texture

	// Metal
	Albedo core.Color
	Fuzz   float64

	// Dielectric
	RefractionIndex float64
}

// Scatter is the outgoing ray and the color it is filtered by
type Scatter struct {
	Ray         core.Ray
	Attenuation core.Color
}

// Scatter returns the bounced ray for rayIn at hit, or false when the material absorbs it
func (m *Material) Scatter(rayIn core.Ray, hit geometry.HitRecord, random *rand.Rand) (Scatter, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, random), true
	case KindMetal:
		return m.scatterMetal(rayIn, hit, random), true
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, random), true
	case KindFairyLight:
		return m.scatterFairyLight(hit, random), true
	}
	return Scatter{}, false
}

// Emitted returns the light leaving the surface towards the ray origin, or false for non-emitters
func (m *Material) Emitted(rayIn core.Ray, hit geometry.HitRecord) (core.Color, bool) {
	switch m.Kind {
	case KindDiffuseLight:
		return m.Texture.Value(hit.U, hit.V, hit.Point), true
	case KindFairyLight:
		return m.emitFairyLight(rayIn, hit), true
	}
	return core.Color{}, false
}
