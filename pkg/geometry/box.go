package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// Box is an axis-aligned box made of six rects
type Box struct {
	Min core.Vec3
	Max core.Vec3
}

// NewBox creates a box spanning two opposite corners given in any order
func NewBox(p0, p1 core.Vec3) Box {
	b := core.NewAABBFromPoints(p0, p1)
	return Box{Min: b.Min, Max: b.Max}
}

// sides returns the six faces of the box
func (b Box) sides() [6]Rect {
	p0, p1 := b.Min, b.Max
	return [6]Rect{
		{Orientation: XY, A0: p0.X, A1: p1.X, B0: p0.Y, B1: p1.Y, K: p1.Z},
		{Orientation: XY, A0: p0.X, A1: p1.X, B0: p0.Y, B1: p1.Y, K: p0.Z},
		{Orientation: XZ, A0: p0.X, A1: p1.X, B0: p0.Z, B1: p1.Z, K: p1.Y},
		{Orientation: XZ, A0: p0.X, A1: p1.X, B0: p0.Z, B1: p1.Z, K: p0.Y},
		{Orientation: YZ, A0: p0.Y, A1: p1.Y, B0: p0.Z, B1: p1.Z, K: p1.X},
		{Orientation: YZ, A0: p0.Y, A1: p1.Y, B0: p0.Z, B1: p1.Z, K: p0.X},
	}
}

// Hit returns the closest face hit within [tMin, tMax]
func (b Box) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	var closest HitRecord
	found := false
	for _, side := range b.sides() {
		if hit, ok := side.Hit(ray, tMin, tMax); ok {
			closest, found = hit, true
			tMax = hit.T
		}
	}
	if found {
		// Faces carry +axis normals; point them away from the box center instead.
		outward := closest.Normal
		if !closest.FrontFace {
			outward = outward.Negate()
		}
		if outward.Dot(closest.Point.Subtract(b.center())) < 0 {
			outward = outward.Negate()
		}
		closest.SetFaceNormal(ray, outward)
	}
	return closest, found
}

// BoundingBox returns the box itself
func (b Box) BoundingBox() core.AABB {
	return core.NewAABB(b.Min, b.Max)
}

func (b Box) center() core.Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}
