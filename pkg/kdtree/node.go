package kdtree

import (
	"cmp"

	"github.com/1F47E/geo-index-kdtree/pkg/geo"
)

// node owns its children; parent is a back-reference used to unlink on delete.
type node[K comparable, V any] struct {
	record Record[K, V]
	parent *node[K, V]
	left   *node[K, V]
	right  *node[K, V]
	// depth is the level the node was placed at. It fixes the discriminating axis
	// and is kept when a subtree is spliced upwards on delete.
	depth int
}

func (n *node[K, V]) axis() geo.Axis {
	return geo.AxisAt(n.depth)
}

func (n *node[K, V]) value(a geo.Axis) float64 {
	return n.record.point.Coord(a)
}

// replaceChild points whichever side of n referenced old at repl.
func (n *node[K, V]) replaceChild(old, repl *node[K, V]) {
	if n.left == old {
		n.left = repl
	} else {
		n.right = repl
	}
}

// compareOn orders points by their coordinate on a, then on the other axis.
// Left subtrees hold the smaller keys of their node's axis, right subtrees the larger.
func compareOn(a geo.Axis, p, q geo.Point) int {
	if c := cmp.Compare(p.Coord(a), q.Coord(a)); c != 0 {
		return c
	}
	return cmp.Compare(p.Coord(a.Other()), q.Coord(a.Other()))
}
