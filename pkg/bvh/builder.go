package bvh

import (
	"math"
	"sort"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("bvh")

// split kinds evaluated at every branch, in tie-breaking order
type splitKind int

const (
	splitMedian splitKind = iota
	splitSpace
)

var axisNames = [3]string{"x", "y", "z"}

func (k splitKind) String() string {
	if k == splitMedian {
		return "median"
	}
	return "space"
}

// builder partitions leaves recursively, appending finished nodes to the arena
type builder struct {
	boxes  []core.AABB
	orders [3][]int
	member []bool
	nodes  []Node
}

// New builds a tree from items. Items that report no bounding box cannot be
// placed in the hierarchy and are returned separately, in their original order,
// for the caller to test linearly.
func New[T Item](items []T) (*Tree[T], []T) {
	start := time.Now()

	var leaves, unbounded []T
	var boxes []core.AABB
	for _, item := range items {
		box, ok := item.BoundingBox()
		if !ok {
			unbounded = append(unbounded, item)
			continue
		}
		leaves = append(leaves, item)
		boxes = append(boxes, box)
	}

	tree := &Tree[T]{leaves: leaves, root: noNode}
	if len(leaves) == 0 {
		return tree, unbounded
	}

	b := newBuilder(boxes)
	all := make([]int, len(boxes))
	for i := range all {
		all[i] = i
	}
	root := b.partition(all)
	b.nodes = append(b.nodes, root)

	tree.nodes = b.nodes
	tree.root = len(b.nodes) - 1

	stats := tree.Stats()
	logger.Infof(
		"BVH tree build time: %d ms (%d leaves, %d nodes, max depth %d, %d unbounded)",
		time.Since(start).Milliseconds(), stats.Leaves, stats.Nodes, stats.MaxDepth, len(unbounded),
	)
	return tree, unbounded
}

func newBuilder(boxes []core.AABB) *builder {
	b := &builder{
		boxes:  boxes,
		member: make([]bool, len(boxes)),
		nodes:  make([]Node, 0, 2*len(boxes)-1),
	}
	for axis := 0; axis < 3; axis++ {
		order := make([]int, len(boxes))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return boxes[order[i]].Min.Axis(axis) < boxes[order[j]].Min.Axis(axis)
		})
		b.orders[axis] = order
	}
	return b
}

// partition returns the node covering subset. Children are appended to the
// arena before the caller appends the returned parent.
func (b *builder) partition(subset []int) Node {
	if len(subset) == 1 {
		leaf := subset[0]
		return Node{Box: b.boxes[leaf], Left: noNode, Right: noNode, Leaf: leaf}
	}

	left, right := b.bestSplit(subset)
	lhs := b.partition(left)
	rhs := b.partition(right)

	lhsIdx := len(b.nodes)
	b.nodes = append(b.nodes, lhs)
	rhsIdx := len(b.nodes)
	b.nodes = append(b.nodes, rhs)

	return Node{
		Box:   core.SurroundingBox(lhs.Box, rhs.Box),
		Left:  lhsIdx,
		Right: rhsIdx,
		Leaf:  noNode,
	}
}

// bestSplit evaluates median and spatial splits along each axis and keeps the
// one with the smallest combined child volume. Earlier candidates win ties.
func (b *builder) bestSplit(subset []int) (left, right []int) {
	for _, i := range subset {
		b.member[i] = true
	}
	defer func() {
		for _, i := range subset {
			b.member[i] = false
		}
	}()

	bestCost := math.Inf(1)
	bestName := ""
	for axis := 0; axis < 3; axis++ {
		ordered := b.ordered(axis, len(subset))
		for _, kind := range []splitKind{splitMedian, splitSpace} {
			var l, r []int
			if kind == splitMedian {
				l, r = splitAtMedian(ordered)
			} else {
				l, r = b.splitAtMidpoint(ordered, axis)
			}

			if len(l) == 0 || len(r) == 0 {
				continue
			}

			cost := b.volume(l) + b.volume(r)
			if left == nil || cost < bestCost {
				left, right, bestCost = l, r, cost
				bestName = axisNames[axis] + "min_" + kind.String()
			}
		}
	}

	if log.Enabled(log.Debug) {
		worst := float64(max(len(left), len(right))) / float64(len(subset))
		logger.Debugf("selected split `%s` lhs[%d] rhs[%d] cost[%.2f] worst fraction %.2f",
			bestName, len(left), len(right), bestCost, worst)
	}
	return left, right
}

// ordered returns the members of the current subset sorted by box minimum on axis
func (b *builder) ordered(axis, n int) []int {
	out := make([]int, 0, n)
	for _, i := range b.orders[axis] {
		if b.member[i] {
			out = append(out, i)
		}
	}
	return out
}

// splitAtMedian puts the first half of ordered on the left
func splitAtMedian(ordered []int) (left, right []int) {
	half := len(ordered) / 2
	return ordered[:half:half], ordered[half:]
}

// splitAtMidpoint puts items whose minimum lies below the midpoint of the
// first and last minimums on the left. The first item always goes left.
func (b *builder) splitAtMidpoint(ordered []int, axis int) (left, right []int) {
	first := b.boxes[ordered[0]].Min.Axis(axis)
	last := b.boxes[ordered[len(ordered)-1]].Min.Axis(axis)
	mid := (first + last) / 2

	left = append(left, ordered[0])
	for _, i := range ordered[1:] {
		if b.boxes[i].Min.Axis(axis) < mid {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

// volume returns the volume of the union of the given leaf boxes, zero when empty
func (b *builder) volume(set []int) float64 {
	if len(set) == 0 {
		return 0
	}
	box := b.boxes[set[0]]
	for _, i := range set[1:] {
		box = core.SurroundingBox(box, b.boxes[i])
	}
	return box.Volume()
}
