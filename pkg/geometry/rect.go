package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// rectPadding is how far a rect's bounding box extends along its fixed axis
const rectPadding = 0.0001

// Orientation selects the plane an axis-aligned rect lies in
type Orientation int

const (
	XY Orientation = iota // fixed z
	YZ                    // fixed x
	XZ                    // fixed y
)

func (o Orientation) String() string {
	switch o {
	case XY:
		return "xy"
	case YZ:
		return "yz"
	case XZ:
		return "xz"
	}
	return "unknown"
}

// axes returns the two free axes and the fixed axis
func (o Orientation) axes() (a, b, k int) {
	switch o {
	case XY:
		return 0, 1, 2
	case YZ:
		return 1, 2, 0
	default:
		return 0, 2, 1
	}
}

// Rect is an axis-aligned rectangle spanning [A0,A1]x[B0,B1] on its free axes,
// positioned at K on the fixed axis. Its outward normal points along +fixed axis.
type Rect struct {
	Orientation Orientation
	A0, A1      float64
	B0, B1      float64
	K           float64
}

// Hit tests if a ray intersects with the rect
func (r Rect) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	a, b, k := r.Orientation.axes()

	dk := ray.Direction.Axis(k)
	if dk == 0 {
		return HitRecord{}, false
	}
	t := (r.K - ray.Origin.Axis(k)) / dk
	if t < tMin || t > tMax {
		return HitRecord{}, false
	}

	p := ray.At(t)
	pa, pb := p.Axis(a), p.Axis(b)
	if pa < r.A0 || pa > r.A1 || pb < r.B0 || pb > r.B1 {
		return HitRecord{}, false
	}

	hit := HitRecord{
		T:     t,
		Point: p,
		U:     fraction(pa, r.A0, r.A1),
		V:     fraction(pb, r.B0, r.B1),
	}
	hit.SetFaceNormal(ray, r.normal())
	return hit, true
}

// fraction returns where x lies between lo and hi, or 0 for a zero-width span
func fraction(x, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (x - lo) / (hi - lo)
}

// newRect orders each pair of bounds so reversed input still spans the same area
func newRect(o Orientation, a0, a1, b0, b1, k float64) Rect {
	return Rect{Orientation: o, A0: min(a0, a1), A1: max(a0, a1), B0: min(b0, b1), B1: max(b0, b1), K: k}
}

// BoundingBox returns the rect's box padded along the fixed axis
func (r Rect) BoundingBox() core.AABB {
	var lo, hi [3]float64
	a, b, k := r.Orientation.axes()
	lo[a], hi[a] = r.A0, r.A1
	lo[b], hi[b] = r.B0, r.B1
	lo[k], hi[k] = r.K-rectPadding, r.K+rectPadding
	return core.NewAABB(core.NewVec3(lo[0], lo[1], lo[2]), core.NewVec3(hi[0], hi[1], hi[2]))
}

func (r Rect) normal() core.Vec3 {
	var n [3]float64
	_, _, k := r.Orientation.axes()
	n[k] = 1
	return core.NewVec3(n[0], n[1], n[2])
}
