package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/bvh"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// shadowAcne is the minimum hit distance, keeping bounced rays from hitting
// the surface they start on
const shadowAcne = 0.001

// DefaultMaxDepth is the bounce limit used when none is configured
const DefaultMaxDepth = 50

// PathTracer implements unidirectional path tracing with no light sampling:
// light is only gathered when a path happens to hit an emitter or escapes to the sky.
type PathTracer struct {
	MaxDepth int
}

// NewPathTracer creates a path tracer with the given bounce limit
func NewPathTracer(maxDepth int) *PathTracer {
	return &PathTracer{MaxDepth: maxDepth}
}

// RayColor follows one path through the scene and returns the light it carries back
func (pt *PathTracer) RayColor(s *scene.Scene, ws *bvh.Workspace, random *rand.Rand, ray core.Ray) core.Color {
	attenuation := core.Splat(1)
	var color core.Color

	for depth := pt.MaxDepth; depth > 0; depth-- {
		obj, hit, ok := s.Hit(ws, ray, shadowAcne, math.Inf(1))
		if !ok {
			return color.Add(attenuation.MultiplyVec(s.Skybox.Background(ray)))
		}

		if emitted, ok := obj.Material.Emitted(ray, hit); ok {
			color = color.Add(attenuation.MultiplyVec(emitted))
		}

		scatter, ok := obj.Material.Scatter(ray, hit, random)
		if !ok {
			return color
		}
		attenuation = attenuation.MultiplyVec(scatter.Attenuation)
		ray = scatter.Ray
	}

	// Bounce limit reached: the path contributes nothing further
	return color
}
