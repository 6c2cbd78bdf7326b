package kdtree

import (
	"slices"

	"github.com/1F47E/geo-index-kdtree/pkg/geo"
)

// IsBalanced reports whether, for every node, the heights of its two subtrees
// differ by at most one. It is a diagnostic for query efficiency; nothing keeps
// the tree balanced automatically.
func (t *Tree[K, V]) IsBalanced() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, balanced := t.heights()
	return balanced
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[K, V]) Height() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	h, _ := t.heights()
	return h
}

// heights computes subtree heights bottom-up and returns the root height
// together with the height-balance verdict.
func (t *Tree[K, V]) heights() (int, bool) {
	if t.root == nil {
		return 0, true
	}

	// Reversed (node, right, left) pre-order yields children before parents.
	var order []*node[K, V]
	stack := []*node[K, V]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		order = append(order, n)
		if n.left != nil {
			stack = append(stack, n.left)
		}
		if n.right != nil {
			stack = append(stack, n.right)
		}
	}

	height := make(map[*node[K, V]]int, len(order))
	balanced := true
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		l, r := height[n.left], height[n.right]
		if l-r > 1 || r-l > 1 {
			balanced = false
		}
		height[n] = max(l, r) + 1
	}
	return height[t.root], balanced
}

// Balance rebuilds the tree from the indexed nodes by recursive median splits,
// alternating the sort axis with depth. Records are not modified; only node
// links and depths change. The resulting height is O(log n).
func (t *Tree[K, V]) Balance() {
	t.mu.Lock()
	defer t.mu.Unlock()

	nodes := t.index.nodes()
	if len(nodes) == 0 {
		return
	}
	t.root = build(nodes, nil, 0)
}

func build[K comparable, V any](nodes []*node[K, V], parent *node[K, V], depth int) *node[K, V] {
	if len(nodes) == 0 {
		return nil
	}

	a := geo.AxisAt(depth)
	slices.SortFunc(nodes, func(x, y *node[K, V]) int {
		return compareOn(a, x.record.point, y.record.point)
	})

	mid := (len(nodes) - 1) / 2
	n := nodes[mid]
	n.depth = depth
	n.parent = parent
	n.left = build(nodes[:mid], n, depth+1)
	n.right = build(nodes[mid+1:], n, depth+1)
	return n
}
