package scene

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Builtin is a scene generator compiled into the binary
type Builtin struct {
	Name        string
	Description string
	Generate    func(random *rand.Rand) *Description
}

var builtins = map[string]Builtin{
	"demo":     {"demo", "Three spheres: diffuse, hollow glass and polished metal", Demo},
	"random":   {"random", "Grid of random small spheres on a glass-coated floor", func(r *rand.Rand) *Description { return Random(r, false) }},
	"night":    {"night", "Random spheres lit only by glowing fairy lights", func(r *rand.Rand) *Description { return Random(r, true) }},
	"perlin":   {"perlin", "Marble sphere on a checker floor", Perlin},
	"boxlight": {"boxlight", "Marble sphere under a rectangular area light", BoxLight},
	"cornell":  {"cornell", "Cornell box with two blocks and a ceiling light", Cornell},
	"checker":  {"checker", "Texture showcase on an infinite ground plane", CheckerShowcase},
}

// Builtins returns every built-in scene sorted by name
func Builtins() []Builtin {
	out := make([]Builtin, 0, len(builtins))
	for _, b := range builtins {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupBuiltin finds a built-in scene by name
func LookupBuiltin(name string) (Builtin, error) {
	b, ok := builtins[name]
	if !ok {
		return Builtin{}, fmt.Errorf("unknown scene %q", name)
	}
	return b, nil
}

// DefaultCamera is the viewpoint shared by most built-in scenes
func DefaultCamera() *CameraSpec {
	return &CameraSpec{
		LookFrom:      V(13, 2, 3),
		LookAt:        V(0, 0, 0),
		FocusDistance: 10,
	}
}

func sphere(center Vec, radius float64) ShapeSpec {
	return ShapeSpec{Sphere: &SphereSpec{Center: center, Radius: radius}}
}

func rect(plane string, a0, a1, b0, b1, k float64) ShapeSpec {
	return ShapeSpec{Rect: &RectSpec{Plane: plane, A: [2]float64{a0, a1}, B: [2]float64{b0, b1}, K: k}}
}

func box(min, max Vec) ShapeSpec {
	return ShapeSpec{Box: &BoxSpec{Min: min, Max: max}}
}

func solid(r, g, b float64) TextureSpec {
	c := V(r, g, b)
	return TextureSpec{Solid: &c}
}

func solidVec(v core.Vec3) TextureSpec {
	return solid(v.X, v.Y, v.Z)
}

func checker(size float64, odd, even TextureSpec) TextureSpec {
	return TextureSpec{Checker: &CheckerSpec{Size: size, Odd: odd, Even: even}}
}

func noise(scale float64, seed int64) TextureSpec {
	return TextureSpec{Noise: &NoiseSpec{Scale: scale, Seed: seed}}
}

func lambertian(t TextureSpec) MaterialSpec { return MaterialSpec{Lambertian: &t} }

func metal(albedo Vec, fuzz float64) MaterialSpec {
	return MaterialSpec{Metal: &MetalSpec{Albedo: albedo, Fuzz: fuzz}}
}

func dielectric(ir float64) MaterialSpec {
	return MaterialSpec{Dielectric: &DielectricSpec{IR: ir}}
}

func diffuseLight(t TextureSpec) MaterialSpec { return MaterialSpec{DiffuseLight: &t} }

func fairyLight(t TextureSpec) MaterialSpec { return MaterialSpec{FairyLight: &t} }

// Demo is the classic three sphere scene. The left sphere is a glass shell:
// the inner sphere has a negative radius so its normals point inwards.
func Demo(_ *rand.Rand) *Description {
	d := &Description{Name: "demo", Skybox: SkyboxSpec{Kind: "above"}, Camera: DefaultCamera()}
	glass := dielectric(1.5)
	d.Add(sphere(V(0, -100.5, -1), 100), lambertian(solid(0.8, 0.8, 0)))
	d.Add(sphere(V(0, 0, -1), 0.5), lambertian(solid(0.1, 0.2, 0.5)))
	d.Add(sphere(V(-1, 0, -1), 0.5), glass)
	d.Add(sphere(V(-1, 0, -1), -0.4), glass)
	d.Add(sphere(V(1, 0, -1), 0.5), metal(V(0.8, 0.6, 0.2), 0))
	return d
}

// addGroundChecker adds a large green and white checker floor just below y=0
func addGroundChecker(d *Description) {
	const size = 30.0
	tex := checker(10, solid(0.2, 0.3, 0.1), solid(0.9, 0.9, 0.9))
	d.Add(rect("xz", -size, size, -size, size, -0.0001), lambertian(tex))
}

// addFancyGround adds a marbled checker floor under a thin clear top coat
func addFancyGround(d *Description, random *rand.Rand) {
	const (
		size        = 30.0
		topCoat     = 0.01
		layerOffset = 0.01
	)
	lower := checker(3, noise(1, random.Int63()), solid(0.1, 0.1, 0.1))
	d.Add(rect("xz", -size, size, -size, size, -topCoat-layerOffset), lambertian(lower))
	d.Add(box(V(-size, -topCoat, -size), V(size, 0, size)), dielectric(1.0))
}

// Perlin shows the marble texture on a single large sphere
func Perlin(random *rand.Rand) *Description {
	d := &Description{Name: "perlin", Skybox: SkyboxSpec{Kind: "above"}, Camera: DefaultCamera()}
	addGroundChecker(d)
	d.Add(sphere(V(0, 2, 0), 2), lambertian(noise(4, random.Int63())))
	return d
}

// BoxLight lights the perlin scene with a rect light and no sky
func BoxLight(random *rand.Rand) *Description {
	d := &Description{Name: "boxlight", Skybox: SkyboxSpec{Kind: "none"}, Camera: DefaultCamera()}
	addGroundChecker(d)
	d.Add(sphere(V(0, 2, 0), 2), lambertian(noise(4, random.Int63())))
	d.Add(rect("xz", 3, 5, 1, 3, 3.5), diffuseLight(solid(4, 4, 4)))
	return d
}

// Cornell is the standard 555 unit Cornell box
func Cornell(_ *rand.Rand) *Description {
	d := &Description{
		Name:   "cornell",
		Skybox: SkyboxSpec{Kind: "none"},
		Camera: &CameraSpec{
			LookFrom:      V(278, 278, -800),
			LookAt:        V(278, 278, 0),
			VFov:          40,
			Aperture:      0.00001,
			FocusDistance: 10,
			AspectRatio:   "square",
		},
	}

	red := lambertian(solid(0.65, 0.05, 0.05))
	white := lambertian(solid(0.73, 0.73, 0.73))
	green := lambertian(solid(0.12, 0.45, 0.15))
	light := fairyLight(solid(15, 15, 15))

	const size = 555.0
	d.Add(rect("yz", 0, size, 0, size, size), green)
	d.Add(rect("yz", 0, size, 0, size, 0), red)
	d.Add(rect("xz", 213, 343, 227, 332, 554), light)
	d.Add(rect("xz", 0, size, 0, size, 0), white)
	d.Add(rect("xz", 0, size, 0, size, size), white)
	d.Add(rect("xy", 0, size, 0, size, size), white)
	d.Add(box(V(130, 0, 65), V(295, 165, 230)), white)
	d.Add(box(V(265, 0, 295), V(430, 330, 460)), white)
	return d
}

// CheckerShowcase puts a row of textured spheres on an infinite plane
func CheckerShowcase(random *rand.Rand) *Description {
	d := &Description{Name: "checker", Skybox: SkyboxSpec{Kind: "above"}, Camera: DefaultCamera()}
	ground := checker(2, solid(0.1, 0.1, 0.1), solid(0.9, 0.9, 0.9))
	d.Add(ShapeSpec{Plane: &PlaneSpec{Point: V(0, 0, 0), Normal: V(0, 1, 0)}}, lambertian(ground))

	d.Add(sphere(V(-4, 1, 0), 1), lambertian(checker(8, solid(0.8, 0.1, 0.1), solid(0.9, 0.9, 0.9))))
	d.Add(sphere(V(0, 1, 0), 1), lambertian(noise(4, random.Int63())))
	d.Add(sphere(V(4, 1, 0), 1), metal(V(0.7, 0.6, 0.5), 0.05))
	return d
}

type ballType int

const (
	ballColor ballType = iota
	ballLight
	ballGlass
	ballMetal
	ballChecker
	ballMarble
)

// chooseWeighted picks an index with probability proportional to its weight
func chooseWeighted(random *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := random.Float64() * total
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	// Rounding can leave r just above the last bucket
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return 0
}

// ballFitter shrinks each new ball to the gap left by the balls placed before
// it, lowering the center by the same amount so the ball stays on the ground.
// Balls that end up smaller than minFittedRadius are not remembered.
type ballFitter struct {
	balls []SphereSpec
}

func (f *ballFitter) fit(center core.Vec3, radius float64) (core.Vec3, float64) {
	orig := radius
	for _, other := range f.balls {
		dist := other.Center.Vec3().Subtract(center).Length()
		radius = min(radius, dist-other.Radius)
	}
	center.Y -= orig - radius
	if radius >= minFittedRadius {
		f.balls = append(f.balls, SphereSpec{Center: VecOf(center), Radius: radius})
	}
	return center, radius
}

// minFittedRadius drops balls that would have to shrink to almost nothing
const minFittedRadius = 0.01

func randomColor(random *rand.Rand) core.Vec3 {
	return core.RandomVec3(random, 0, 1).MultiplyVec(core.RandomVec3(random, 0, 1))
}

// Random is the final scene of the weekend series: three big spheres among a
// grid of small random ones. At night the sky is off and some balls glow.
func Random(random *rand.Rand, night bool) *Description {
	d := &Description{Name: "random", Skybox: SkyboxSpec{Kind: "above"}, Camera: DefaultCamera()}
	if night {
		d.Name = "night"
		d.Skybox.Kind = "none"
		addGroundChecker(d)
	} else {
		addFancyGround(d, random)
	}

	fitter := &ballFitter{}
	addBall := func(center core.Vec3, radius float64, mat MaterialSpec) bool {
		center, radius = fitter.fit(center, radius)
		if radius < minFittedRadius {
			return false
		}
		d.Add(sphere(VecOf(center), radius), mat)
		return true
	}

	addBall(core.NewVec3(0, 1, 0), 1, dielectric(1.5))
	if night {
		addBall(core.NewVec3(-4, 1, 0), 1, fairyLight(solidVec(core.NewVec3(0.7, 0.6, 0.5).Multiply(1.3))))
	} else {
		addBall(core.NewVec3(-4, 1, 0), 1, lambertian(solid(0.4, 0.2, 0.1)))
	}
	addBall(core.NewVec3(4, 1, 0), 1, metal(V(0.7, 0.6, 0.5), 0))

	lightWeight := 0.0
	if night {
		lightWeight = 4
	}
	weights := []float64{
		ballColor:   4,
		ballLight:   lightWeight,
		ballGlass:   1,
		ballMetal:   4,
		ballChecker: 0.3,
		ballMarble:  0,
	}

	keepOut := core.NewVec3(3, 0, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			kind := ballType(chooseWeighted(random, weights))

			radius := core.RandomRange(random, 0.05, 0.25)
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				radius,
				float64(b)+0.9*random.Float64(),
			)
			keepOut.Y = radius
			if center.Subtract(keepOut).Length() <= 0.9 {
				continue
			}

			var mat MaterialSpec
			switch kind {
			case ballColor:
				mat = lambertian(solidVec(randomColor(random)))
			case ballLight:
				mat = fairyLight(solidVec(randomColor(random).Multiply(5)))
			case ballGlass:
				mat = dielectric(1.5)
			case ballMetal:
				albedo := core.RandomVec3(random, 0.5, 1)
				mat = metal(VecOf(albedo), core.RandomRange(random, 0, 0.5))
			case ballChecker:
				mat = lambertian(checker(8/radius, solidVec(randomColor(random)), solid(0.9, 0.9, 0.9)))
			case ballMarble:
				mat = lambertian(noise(16, random.Int63()))
			}
			addBall(center, radius, mat)
		}
	}

	return d
}
