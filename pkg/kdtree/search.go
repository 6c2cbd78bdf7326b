package kdtree

import (
	"math"

	"github.com/1F47E/geo-index-kdtree/pkg/geo"
)

// NearestResult holds the closest record found by FindNearest.
// Record is nil, and Distance zero, when nothing lies within the search radius.
type NearestResult[K comparable, V any] struct {
	Record   *Record[K, V]
	Distance float64
}

// Found reports whether a record was found.
func (r NearestResult[K, V]) Found() bool {
	return r.Record != nil
}

// FindNearestNeighbors returns every record within maxDistanceKm of p, in
// traversal order (not sorted by distance).
//
// Subtrees are pruned by comparing the raw degree difference on the node's
// axis with maxDistanceKm. That bound is a heuristic: a degree of longitude
// shrinks towards the poles, so results near the poles can differ from an
// exhaustive great-circle scan.
func (t *Tree[K, V]) FindNearestNeighbors(p geo.Point, maxDistanceKm float64) []Record[K, V] {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []Record[K, V]
	t.walkRadius(p, maxDistanceKm, func(rec Record[K, V], _ float64) {
		out = append(out, rec)
	})
	return out
}

// FindNearest returns the closest record within maxDistanceKm of p. When two
// records are equally close the one met first in traversal order wins.
func (t *Tree[K, V]) FindNearest(p geo.Point, maxDistanceKm float64) NearestResult[K, V] {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var res NearestResult[K, V]
	t.walkRadius(p, maxDistanceKm, func(rec Record[K, V], d float64) {
		if res.Record == nil || d < res.Distance {
			res.Record = &rec
			res.Distance = d
		}
	})
	return res
}

// walkRadius visits, in pre-order, every node within maxDistanceKm of p on the
// branches the axis test does not prune. The side of p is searched first; the
// other side only when p is within maxDistanceKm (in degrees) of the split.
func (t *Tree[K, V]) walkRadius(p geo.Point, maxDistanceKm float64, visit func(rec Record[K, V], d float64)) {
	if t.root == nil {
		return
	}
	stack := []*node[K, V]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if d := geo.Distance(n.record.point, p); d <= maxDistanceKm {
			visit(n.record, d)
		}

		a := n.axis()
		near, far := n.right, n.left
		if p.Coord(a) < n.value(a) {
			near, far = n.left, n.right
		}
		// far is pushed first so the whole near subtree is visited before it.
		if far != nil && math.Abs(n.value(a)-p.Coord(a)) <= maxDistanceKm {
			stack = append(stack, far)
		}
		if near != nil {
			stack = append(stack, near)
		}
	}
}

// FindInRange returns every record inside box, in pre-order. The order depends
// on the shape of the tree and so changes after Balance.
func (t *Tree[K, V]) FindInRange(box geo.BoundingBox) []Record[K, V] {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []Record[K, V]
	if t.root == nil {
		return out
	}

	lower, upper := box.Lower(), box.Upper()
	stack := []*node[K, V]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if box.Contains(n.record.point) {
			out = append(out, n.record)
		}

		a := n.axis()
		v := n.value(a)
		switch {
		case v < lower.Coord(a):
			if n.right != nil {
				stack = append(stack, n.right)
			}
		case v > upper.Coord(a):
			if n.left != nil {
				stack = append(stack, n.left)
			}
		default:
			if n.right != nil {
				stack = append(stack, n.right)
			}
			if n.left != nil {
				stack = append(stack, n.left)
			}
		}
	}
	return out
}
