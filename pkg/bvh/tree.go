// Package bvh implements a bounding volume hierarchy over scene objects.
//
// A Tree is built once from a list of items and is read-only afterwards, so a
// single tree can be queried from many goroutines as long as each goroutine
// passes its own Workspace.
package bvh

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Item is anything the tree can store: it can be intersected and may report bounds
type Item interface {
	Hit(ray core.Ray, tMin, tMax float64) (geometry.HitRecord, bool)
	BoundingBox() (core.AABB, bool)
}

// noNode marks an absent child or root
const noNode = -1

// Node is one entry of the tree arena. Leaf nodes have Leaf >= 0 and no children;
// branch nodes have Leaf == -1 and two children that precede them in the arena.
type Node struct {
	Box   core.AABB
	Left  int
	Right int
	Leaf  int
}

// IsLeaf reports whether the node references an item
func (n Node) IsLeaf() bool {
	return n.Leaf >= 0
}

// Tree is an arena-allocated binary BVH. The root is the last node in the arena.
type Tree[T Item] struct {
	nodes  []Node
	leaves []T
	root   int
}

// Empty reports whether the tree has no items
func (t *Tree[T]) Empty() bool {
	return t.root == noNode
}

// Len returns the number of items in the tree
func (t *Tree[T]) Len() int {
	return len(t.leaves)
}

// Leaf returns the item stored at leaf index i
func (t *Tree[T]) Leaf(i int) *T {
	return &t.leaves[i]
}

// Nodes exposes the node arena for inspection
func (t *Tree[T]) Nodes() []Node {
	return t.nodes
}

// Root returns the index of the root node, or -1 for an empty tree
func (t *Tree[T]) Root() int {
	return t.root
}

// Bounds returns the box of the whole tree
func (t *Tree[T]) Bounds() (core.AABB, bool) {
	if t.Empty() {
		return core.AABB{}, false
	}
	return t.nodes[t.root].Box, true
}

// Hit returns the item with the nearest intersection in [tMin, tMax]. The
// workspace stack is reset on entry and left allocated for the next query.
// A nil workspace allocates a temporary one.
func (t *Tree[T]) Hit(ws *Workspace, ray core.Ray, tMin, tMax float64) (*T, geometry.HitRecord, bool) {
	if t.root == noNode {
		return nil, geometry.HitRecord{}, false
	}
	if ws == nil {
		ws = NewWorkspace()
	}

	ws.reset()
	ws.push(t.root)

	var closest *T
	var closestHit geometry.HitRecord
	tClosest := tMax

	for len(ws.stack) > 0 {
		node := &t.nodes[ws.pop()]
		if !node.Box.Hit(ray, tMin, tClosest) {
			continue
		}

		if !node.IsLeaf() {
			ws.push(node.Left)
			ws.push(node.Right)
			continue
		}

		item := &t.leaves[node.Leaf]
		if hit, ok := (*item).Hit(ray, tMin, tClosest); ok {
			closest, closestHit = item, hit
			tClosest = hit.T
		}
	}

	return closest, closestHit, closest != nil
}

// HitLinear tests every item without using the hierarchy
func (t *Tree[T]) HitLinear(ray core.Ray, tMin, tMax float64) (*T, geometry.HitRecord, bool) {
	var closest *T
	var closestHit geometry.HitRecord
	for i := range t.leaves {
		if hit, ok := t.leaves[i].Hit(ray, tMin, tMax); ok {
			closest, closestHit = &t.leaves[i], hit
			tMax = hit.T
		}
	}
	return closest, closestHit, closest != nil
}
