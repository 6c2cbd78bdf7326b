// Package kdtree implements a two-dimensional KD-tree over geographic points.
//
// The tree alternates its discriminating axis with depth (latitude at even
// depths, longitude at odd depths) and keeps an id index so records can be
// fetched, updated and deleted by the caller's id in O(1).
//
// The shape of the tree depends on insertion order. Points inserted in a
// coherent order (monotonic in one or both dimensions) produce a degenerate,
// list-like tree; call Balance once loading is done to rebuild it with
// median splits.
//
// A Tree is safe for concurrent use: one RWMutex guards both the id index and
// the node links.
package kdtree

import (
	"errors"
	"fmt"
	"sync"

	"github.com/1F47E/geo-index-kdtree/pkg/geo"
)

var (
	// ErrNotFound is returned by Update when no record has the given id.
	ErrNotFound = errors.New("no object found for provided ID")

	// ErrDuplicateID is returned by Insert when the id is already indexed.
	ErrDuplicateID = errors.New("an object with the provided ID already exists")
)

// Tree is a KD-tree of records keyed by caller ids of type K carrying payloads of type V.
type Tree[K comparable, V any] struct {
	mu    sync.RWMutex
	root  *node[K, V]
	index identityIndex[K, V]
}

// New creates an empty tree.
func New[K comparable, V any]() *Tree[K, V] {
	return &Tree[K, V]{
		index: make(identityIndex[K, V]),
	}
}

// Insert adds rec to the tree and registers its id.
//
// A record whose coordinates exactly match a node met while descending is a
// geometric duplicate: it is dropped without error and its id is not indexed.
// An id that is already indexed is rejected with ErrDuplicateID.
func (t *Tree[K, V]) Insert(rec Record[K, V]) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.index.get(rec.id); ok {
		return fmt.Errorf("insert %v: %w", rec.id, ErrDuplicateID)
	}

	if t.root == nil {
		t.root = &node[K, V]{record: rec}
		t.index.put(rec.id, t.root)
		return nil
	}

	p := rec.point
	current := t.root
	for {
		if p.Equal(current.record.point) {
			return nil
		}

		// On a tie the other axis decides the side.
		next := &current.right
		if compareOn(current.axis(), p, current.record.point) < 0 {
			next = &current.left
		}
		if *next == nil {
			n := &node[K, V]{record: rec, parent: current, depth: current.depth + 1}
			*next = n
			t.index.put(rec.id, n)
			return nil
		}
		current = *next
	}
}

// Delete removes the record with the given id. It reports whether the id was present.
func (t *Tree[K, V]) Delete(id K) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, ok := t.index.get(id)
	if !ok {
		return false
	}
	t.index.remove(id)
	t.removeNode(n)
	return true
}

// removeNode unlinks n. A node with two children takes over the record of the
// right-subtree node with the smallest value on n's axis, and that node is
// removed in turn.
func (t *Tree[K, V]) removeNode(n *node[K, V]) {
	for n.left != nil && n.right != nil {
		successor := minOnAxis(n.right, n.axis())
		n.record = successor.record
		t.index.put(n.record.id, n)
		n = successor
	}

	child := n.left
	if child == nil {
		child = n.right
	}
	if child != nil {
		child.parent = n.parent
	}
	if n.parent == nil {
		t.root = child
	} else {
		n.parent.replaceChild(n, child)
	}
	n.parent, n.left, n.right = nil, nil, nil
}

// minOnAxis returns the node of the subtree with the smallest coordinate on a,
// ties broken by the other axis the same way Insert routes them.
func minOnAxis[K comparable, V any](root *node[K, V], a geo.Axis) *node[K, V] {
	best := root
	stack := []*node[K, V]{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if compareOn(a, n.record.point, best.record.point) < 0 {
			best = n
		}
		// Nodes splitting on a keep nothing smaller than themselves on the right.
		if n.right != nil && n.axis() != a {
			stack = append(stack, n.right)
		}
		if n.left != nil {
			stack = append(stack, n.left)
		}
	}
	return best
}

// GetByID returns the record with the given id.
func (t *Tree[K, V]) GetByID(id K) (Record[K, V], bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n, ok := t.index.get(id)
	if !ok {
		var zero Record[K, V]
		return zero, false
	}
	return n.record, true
}

// Contains reports whether a record with the given id is indexed.
func (t *Tree[K, V]) Contains(id K) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.index.get(id)
	return ok
}

// Update replaces the payload of the record with the given id. The location never changes.
func (t *Tree[K, V]) Update(id K, payload V) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, ok := t.index.get(id)
	if !ok {
		return fmt.Errorf("update %v: %w", id, ErrNotFound)
	}
	n.record.payload = payload
	return nil
}

// Size returns the number of indexed records.
func (t *Tree[K, V]) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.index.size()
}

// Records returns every record in pre-order.
func (t *Tree[K, V]) Records() []Record[K, V] {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Record[K, V], 0, t.index.size())
	t.preOrder(func(n *node[K, V]) {
		out = append(out, n.record)
	})
	return out
}

// Clear removes all records.
func (t *Tree[K, V]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.root = nil
	t.index = make(identityIndex[K, V])
}

func (t *Tree[K, V]) preOrder(visit func(n *node[K, V])) {
	if t.root == nil {
		return
	}
	stack := []*node[K, V]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		visit(n)
		if n.right != nil {
			stack = append(stack, n.right)
		}
		if n.left != nil {
			stack = append(stack, n.left)
		}
	}
}
