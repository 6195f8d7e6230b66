package renderer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrCameraDimensions is returned when a camera is not given exactly two of
// width, height and aspect ratio
var ErrCameraDimensions = errors.New("camera requires exactly 2 of (height, width, aspect ratio)")

// ErrUnknownAspectRatio is returned for an aspect ratio preset that does not exist
var ErrUnknownAspectRatio = errors.New("unknown aspect ratio")

// aspectRatios are the named presets accepted on the command line
var aspectRatios = map[string][2]int{
	"3x2":    {3, 2},
	"16x9":   {16, 9},
	"16x10":  {16, 10},
	"square": {1, 1},
	"iphone": {1170, 2532},
}

// ParseAspectRatio converts a preset name such as "16x9" into width/height
func ParseAspectRatio(name string) (float64, error) {
	r, ok := aspectRatios[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w %q (expected one of %s)", ErrUnknownAspectRatio, name, strings.Join(AspectRatioNames(), ", "))
	}
	return float64(r[0]) / float64(r[1]), nil
}

// AspectRatioNames lists the preset names in sorted order
func AspectRatioNames() []string {
	names := make([]string, 0, len(aspectRatios))
	for name := range aspectRatios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CameraBuilder configures a Camera. Zero values mean "not set"; exactly two of
// Width, Height and AspectRatio must be set.
type CameraBuilder struct {
	VFov        float64 // vertical field of view in degrees
	Aperture    float64 // lens diameter, 0 for a pinhole
	FocalLength float64
	Width       int
	Height      int
	AspectRatio float64 // width / height
}

// Build validates the dimensions and derives the viewport
func (b CameraBuilder) Build() (*Camera, error) {
	width, height, ratio, err := b.dimensions()
	if err != nil {
		return nil, err
	}

	vfov := b.VFov
	if vfov <= 0 {
		vfov = DefaultCameraSettings().VFov
	}
	focalLength := b.FocalLength
	if focalLength <= 0 {
		focalLength = 1
	}

	theta := vfov * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2)

	return &Camera{
		Width:          width,
		Height:         height,
		viewportWidth:  ratio * viewportHeight,
		viewportHeight: viewportHeight,
		focalLength:    focalLength,
		lensRadius:     b.Aperture / 2,
	}, nil
}

func (b CameraBuilder) dimensions() (width, height int, ratio float64, err error) {
	switch {
	case b.Width > 0 && b.Height <= 0 && b.AspectRatio > 0:
		width, ratio = b.Width, b.AspectRatio
		height = int(float64(width) / ratio)
	case b.Width <= 0 && b.Height > 0 && b.AspectRatio > 0:
		height, ratio = b.Height, b.AspectRatio
		width = int(float64(height) * ratio)
	case b.Width > 0 && b.Height > 0 && b.AspectRatio <= 0:
		width, height = b.Width, b.Height
		ratio = float64(width) / float64(height)
	default:
		return 0, 0, 0, ErrCameraDimensions
	}

	if width <= 0 || height <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: derived image is %dx%d", ErrCameraDimensions, width, height)
	}
	return width, height, ratio, nil
}

// Camera holds the optics and image size. It is immutable and safe to share.
type Camera struct {
	Width, Height int

	viewportWidth  float64
	viewportHeight float64
	focalLength    float64
	lensRadius     float64
}

// CameraPosition places a camera in the world
type CameraPosition struct {
	Origin        core.Point
	FocusDistance float64

	u, v, w core.Vec3 // right, up, backwards
}

// LookAt builds an orthonormal basis looking from one point at another.
// The focus distance defaults to the distance between the two points.
func LookAt(from, at core.Point, up core.Vec3) CameraPosition {
	back := from.Subtract(at)
	w := back.Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)
	return CameraPosition{
		Origin:        from,
		FocusDistance: back.Length(),
		u:             u,
		v:             v,
		w:             w,
	}
}

// PixelRay returns the ray through pixel coordinates (x, y), where y=0 is the
// bottom row. Fractional coordinates address positions within a pixel.
func (c *Camera) PixelRay(random *rand.Rand, pos CameraPosition, x, y float64) core.Ray {
	s := x / float64(c.Width)
	t := y / float64(c.Height)

	horizontal := pos.u.Multiply(c.viewportWidth * pos.FocusDistance)
	vertical := pos.v.Multiply(c.viewportHeight * pos.FocusDistance)
	lowerLeft := pos.Origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(pos.w.Multiply(c.focalLength * pos.FocusDistance))

	var offset core.Vec3
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		offset = pos.u.Multiply(rd.X).Add(pos.v.Multiply(rd.Y))
	}

	direction := lowerLeft.
		Add(horizontal.Multiply(s)).
		Add(vertical.Multiply(t)).
		Subtract(pos.Origin).
		Subtract(offset)

	return core.NewRay(pos.Origin.Add(offset), direction)
}

// CameraSettings is the full camera configuration: optics, image size and placement
type CameraSettings struct {
	VFov          float64
	Aperture      float64
	FocalLength   float64
	Width         int
	Height        int
	AspectRatio   float64
	LookFrom      core.Point
	LookAt        core.Point
	Up            core.Vec3
	FocusDistance float64 // 0 means the look-from to look-at distance
}

// DefaultCameraSettings returns the default camera: 640 pixels wide at 3:2,
// looking at the origin from (13, 2, 3)
func DefaultCameraSettings() CameraSettings {
	return CameraSettings{
		VFov:          20,
		Aperture:      0.001,
		FocalLength:   1,
		Width:         640,
		AspectRatio:   3.0 / 2.0,
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		FocusDistance: 10,
	}
}

// Build creates the camera and its position
func (s CameraSettings) Build() (*Camera, CameraPosition, error) {
	camera, err := CameraBuilder{
		VFov:        s.VFov,
		Aperture:    s.Aperture,
		FocalLength: s.FocalLength,
		Width:       s.Width,
		Height:      s.Height,
		AspectRatio: s.AspectRatio,
	}.Build()
	if err != nil {
		return nil, CameraPosition{}, err
	}

	pos := LookAt(s.LookFrom, s.LookAt, s.Up)
	if s.FocusDistance > 0 {
		pos.FocusDistance = s.FocusDistance
	}
	return camera, pos, nil
}
