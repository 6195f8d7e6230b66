package bvh

const defaultStackCapacity = 64

// Workspace holds the traversal stack for one goroutine. Reusing it across
// queries avoids allocating a stack per ray.
type Workspace struct {
	stack []int
}

// NewWorkspace returns a workspace with a preallocated stack
func NewWorkspace() *Workspace {
	return &Workspace{stack: make([]int, 0, defaultStackCapacity)}
}

func (w *Workspace) reset() {
	w.stack = w.stack[:0]
}

func (w *Workspace) push(node int) {
	w.stack = append(w.stack, node)
}

func (w *Workspace) pop() int {
	last := len(w.stack) - 1
	node := w.stack[last]
	w.stack = w.stack[:last]
	return node
}
