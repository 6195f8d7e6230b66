package bvh

// Stats describes the shape of a built tree
type Stats struct {
	Nodes        int
	Leaves       int
	MaxDepth     int
	AvgLeafDepth float64
}

// Stats walks the tree from the root. The root has depth 1.
func (t *Tree[T]) Stats() Stats {
	var stats Stats
	if t.Empty() {
		return stats
	}

	type entry struct{ node, depth int }
	stack := []entry{{t.root, 1}}
	depthSum := 0

	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		stats.Nodes++
		stats.MaxDepth = max(stats.MaxDepth, e.depth)

		node := t.nodes[e.node]
		if node.IsLeaf() {
			stats.Leaves++
			depthSum += e.depth
			continue
		}
		stack = append(stack, entry{node.Left, e.depth + 1}, entry{node.Right, e.depth + 1})
	}

	stats.AvgLeafDepth = float64(depthSum) / float64(stats.Leaves)
	return stats
}
