package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Kind identifies which variant a Shape holds
type Kind int

const (
	KindSphere Kind = iota
	KindRect
	KindBox
	KindPlane
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindRect:
		return "rect"
	case KindBox:
		return "box"
	case KindPlane:
		return "plane"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Shape is a closed set of primitives. Only the field selected by Kind is meaningful.
type Shape struct {
	Kind   Kind
	Sphere Sphere
	Rect   Rect
	Box    Box
	Plane  Plane
}

// NewSphere creates a sphere shape
func NewSphere(center core.Vec3, radius float64) Shape {
	return Shape{Kind: KindSphere, Sphere: Sphere{Center: center, Radius: radius}}
}

// NewXYRect creates a rect spanning [x0,x1]x[y0,y1] at z=k
func NewXYRect(x0, x1, y0, y1, k float64) Shape {
	return Shape{Kind: KindRect, Rect: newRect(XY, x0, x1, y0, y1, k)}
}

// NewYZRect creates a rect spanning [y0,y1]x[z0,z1] at x=k
func NewYZRect(y0, y1, z0, z1, k float64) Shape {
	return Shape{Kind: KindRect, Rect: newRect(YZ, y0, y1, z0, z1, k)}
}

// NewXZRect creates a rect spanning [x0,x1]x[z0,z1] at y=k
func NewXZRect(x0, x1, z0, z1, k float64) Shape {
	return Shape{Kind: KindRect, Rect: newRect(XZ, x0, x1, z0, z1, k)}
}

// NewBoxShape creates a box shape from two opposite corners
func NewBoxShape(p0, p1 core.Vec3) Shape {
	return Shape{Kind: KindBox, Box: NewBox(p0, p1)}
}

// NewPlaneShape creates an infinite plane shape
func NewPlaneShape(point, normal core.Vec3) Shape {
	return Shape{Kind: KindPlane, Plane: NewPlane(point, normal)}
}

// Hit tests the ray against the selected variant within [tMin, tMax]
func (s Shape) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	switch s.Kind {
	case KindSphere:
		return s.Sphere.Hit(ray, tMin, tMax)
	case KindRect:
		return s.Rect.Hit(ray, tMin, tMax)
	case KindBox:
		return s.Box.Hit(ray, tMin, tMax)
	case KindPlane:
		return s.Plane.Hit(ray, tMin, tMax)
	}
	return HitRecord{}, false
}

// BoundingBox returns the shape's bounds, or false for unbounded shapes
func (s Shape) BoundingBox() (core.AABB, bool) {
	switch s.Kind {
	case KindSphere:
		return s.Sphere.BoundingBox(), true
	case KindRect:
		return s.Rect.BoundingBox(), true
	case KindBox:
		return s.Box.BoundingBox(), true
	}
	return core.AABB{}, false
}
