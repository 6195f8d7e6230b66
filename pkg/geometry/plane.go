package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal.
// It has no bounding box, so scenes test it outside the BVH.
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) Plane {
	return Plane{Point: point, Normal: normal.Normalize()}
}

// Hit tests if a ray intersects with the plane
func (p Plane) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel rays never hit
	if math.Abs(denominator) < 1e-8 {
		return HitRecord{}, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return HitRecord{}, false
	}

	hit := HitRecord{T: t, Point: ray.At(t)}

	// Planar coordinates in a tangent basis, unbounded
	tangent := p.tangent()
	offset := hit.Point.Subtract(p.Point)
	hit.U = offset.Dot(tangent)
	hit.V = offset.Dot(p.Normal.Cross(tangent))

	hit.SetFaceNormal(ray, p.Normal)
	return hit, true
}

func (p Plane) tangent() core.Vec3 {
	helper := core.NewVec3(1, 0, 0)
	if math.Abs(p.Normal.X) > 0.9 {
		helper = core.NewVec3(0, 1, 0)
	}
	return helper.Cross(p.Normal).Normalize()
}
