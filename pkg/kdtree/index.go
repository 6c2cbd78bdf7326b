package kdtree

// identityIndex maps caller ids to the node currently holding the record.
type identityIndex[K comparable, V any] map[K]*node[K, V]

func (idx identityIndex[K, V]) get(id K) (*node[K, V], bool) {
	n, ok := idx[id]
	return n, ok
}

func (idx identityIndex[K, V]) put(id K, n *node[K, V]) {
	idx[id] = n
}

func (idx identityIndex[K, V]) remove(id K) {
	delete(idx, id)
}

func (idx identityIndex[K, V]) size() int {
	return len(idx)
}

func (idx identityIndex[K, V]) nodes() []*node[K, V] {
	out := make([]*node[K, V], 0, len(idx))
	for _, n := range idx {
		out = append(out, n)
	}
	return out
}
