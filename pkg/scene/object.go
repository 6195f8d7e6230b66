package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Object pairs a shape with the material it is made of
type Object struct {
	Shape    geometry.Shape
	Material material.Material
}

// Hit implements bvh.Item
func (o Object) Hit(ray core.Ray, tMin, tMax float64) (geometry.HitRecord, bool) {
	return o.Shape.Hit(ray, tMin, tMax)
}

// BoundingBox implements bvh.Item
func (o Object) BoundingBox() (core.AABB, bool) {
	return o.Shape.BoundingBox()
}
