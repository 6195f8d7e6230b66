// Package scene assembles objects into a queryable world.
package scene

import (
	"github.com/df07/go-pathtracer/pkg/bvh"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
)

var logger = log.New("scene")

// Builder collects objects before the scene is finalized
type Builder struct {
	objects []Object
	skybox  Skybox
}

// NewBuilder returns an empty builder with the daylight skybox
func NewBuilder() *Builder {
	return &Builder{skybox: Above()}
}

// Add appends an object to the scene
func (b *Builder) Add(shape geometry.Shape, mat material.Material) *Builder {
	b.objects = append(b.objects, Object{Shape: shape, Material: mat})
	return b
}

// SetSkybox replaces the background
func (b *Builder) SetSkybox(skybox Skybox) *Builder {
	b.skybox = skybox
	return b
}

// Len returns the number of objects added so far
func (b *Builder) Len() int {
	return len(b.objects)
}

// Finalize builds the BVH over bounded objects. The builder must not be used afterwards.
func (b *Builder) Finalize() *Scene {
	tree, unbounded := bvh.New(b.objects)
	b.objects = nil

	logger.Infof("scene finalized: %d objects in BVH, %d unbounded, skybox %s",
		tree.Len(), len(unbounded), b.skybox.Kind)

	return &Scene{
		Skybox:    b.skybox,
		tree:      tree,
		unbounded: unbounded,
	}
}

// Scene is an immutable world that can be shared by all render workers
type Scene struct {
	Skybox    Skybox
	tree      *bvh.Tree[Object]
	unbounded []Object
}

// Hit returns the nearest object intersected in [tMin, tMax]. Unbounded objects
// are tested first and the tree is then queried up to the closest hit so far.
func (s *Scene) Hit(ws *bvh.Workspace, ray core.Ray, tMin, tMax float64) (*Object, geometry.HitRecord, bool) {
	var closest *Object
	var closestHit geometry.HitRecord
	for i := range s.unbounded {
		if hit, ok := s.unbounded[i].Hit(ray, tMin, tMax); ok {
			closest, closestHit = &s.unbounded[i], hit
			tMax = hit.T
		}
	}

	if obj, hit, ok := s.tree.Hit(ws, ray, tMin, tMax); ok {
		return obj, hit, true
	}
	return closest, closestHit, closest != nil
}

// Len returns the total number of objects
func (s *Scene) Len() int {
	return s.tree.Len() + len(s.unbounded)
}

// Unbounded returns the number of objects tested outside the BVH
func (s *Scene) Unbounded() int {
	return len(s.unbounded)
}

// TreeStats describes the scene's BVH
func (s *Scene) TreeStats() bvh.Stats {
	return s.tree.Stats()
}
