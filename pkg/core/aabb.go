package core

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = SurroundingBox(box, AABB{Min: p, Max: p})
	}
	return box
}

// Hit tests whether the ray enters the box anywhere inside the open window (tMin, tMax).
// Zero direction components divide to ±Inf, which the slab comparison handles without special casing.
func (b AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)
		t0 := (b.Min.Axis(axis) - origin) * invD
		t1 := (b.Max.Axis(axis) - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		tMin = FMax(t0, tMin)
		tMax = FMin(t1, tMax)
		if tMax <= tMin {
			return false
		}
	}
	return true
}

// SurroundingBox returns the smallest box enclosing both a and b
func SurroundingBox(a, b AABB) AABB {
	return AABB{
		Min: Vec3{FMin(a.Min.X, b.Min.X), FMin(a.Min.Y, b.Min.Y), FMin(a.Min.Z, b.Min.Z)},
		Max: Vec3{FMax(a.Max.X, b.Max.X), FMax(a.Max.Y, b.Max.Y), FMax(a.Max.Z, b.Max.Z)},
	}
}

// Bounding folds a list of boxes into one. It returns false for an empty list.
func Bounding(boxes ...AABB) (AABB, bool) {
	if len(boxes) == 0 {
		return AABB{}, false
	}
	box := boxes[0]
	for _, other := range boxes[1:] {
		box = SurroundingBox(box, other)
	}
	return box, true
}

// Size returns the extent of the box along each axis
func (b AABB) Size() Vec3 {
	return b.Max.Subtract(b.Min)
}

// Volume returns dx*dy*dz; flat boxes have zero volume
func (b AABB) Volume() float64 {
	size := b.Size()
	return size.X * size.Y * size.Z
}

// Contains reports whether other lies entirely inside b
func (b AABB) Contains(other AABB) bool {
	return b.Min.X <= other.Min.X && b.Min.Y <= other.Min.Y && b.Min.Z <= other.Min.Z &&
		b.Max.X >= other.Max.X && b.Max.Y >= other.Max.Y && b.Max.Z >= other.Max.Z
}

