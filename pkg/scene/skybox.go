package scene

import (
	"fmt"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// SkyboxKind selects how rays that escape the scene are colored
type SkyboxKind int

const (
	SkyAbove SkyboxKind = iota // white to blue gradient by ray height
	SkyFlat                    // one constant color
	SkyNone                    // black
)

var skyboxNames = map[SkyboxKind]string{
	SkyAbove: "above",
	SkyFlat:  "flat",
	SkyNone:  "none",
}

func (k SkyboxKind) String() string {
	if name, ok := skyboxNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SkyboxKind(%d)", int(k))
}

// ParseSkyboxKind converts a name such as "above" into a SkyboxKind
func ParseSkyboxKind(name string) (SkyboxKind, error) {
	for kind, n := range skyboxNames {
		if strings.EqualFold(n, name) {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown skybox %q", name)
}

// Skybox is the background light source
type Skybox struct {
	Kind  SkyboxKind
	Color core.Color // used by SkyFlat
}

// Above returns the default daylight gradient
func Above() Skybox { return Skybox{Kind: SkyAbove} }

// Flat returns a skybox of one color
func Flat(c core.Color) Skybox { return Skybox{Kind: SkyFlat, Color: c} }

// NoSky returns a black background
func NoSky() Skybox { return Skybox{Kind: SkyNone} }

// Background returns the light arriving along a ray that hit nothing
func (s Skybox) Background(ray core.Ray) core.Color {
	switch s.Kind {
	case SkyAbove:
		unit := ray.Direction.Normalize()
		t := 0.5 * (unit.Y + 1.0)
		white := core.NewVec3(1.0, 1.0, 1.0)
		blue := core.NewVec3(0.5, 0.7, 1.0)
		return white.Multiply(1.0 - t).Add(blue.Multiply(t))
	case SkyFlat:
		return s.Color
	}
	return core.Color{}
}
