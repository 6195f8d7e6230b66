// Package integrator computes the light arriving along camera rays.
package integrator

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/bvh"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe to call from many goroutines as long as
// each caller passes its own workspace and random source.
type Integrator interface {
	RayColor(s *scene.Scene, ws *bvh.Workspace, random *rand.Rand, ray core.Ray) core.Color
}
