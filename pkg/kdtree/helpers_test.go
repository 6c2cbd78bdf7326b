package kdtree

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/1F47E/geo-index-kdtree/pkg/geo"
)

// dubai is a cluster of nine points around Downtown Dubai; ids are "1".."9".
var dubai = []string{
	"25.1967512,55.2732038",
	"25.1962077,55.2714443",
	"25.1954312,55.2811432",
	"25.1903843,55.2798557",
	"25.2002450,55.2734184",
	"25.2028848,55.2783966",
	"25.2012544,55.2569389",
	"25.1644242,55.2450943",
	"25.0763827,55.1616669",
}

// karachi contains a repeated coordinate and two far outliers.
var karachi = []string{
	"24.876282,67.022481",
	"24.867244,67.131593",
	"24.876997,67.120129",
	"24.904153,67.012868",
	"24.933166,67.101917",
	"24.889639,67.069044",
	"24.894643,67.085695",
	"24.950982,67.051792",
	"24.952772,67.054882",
	"24.969653,67.071791",
	"24.990187,67.017117",
	"24.916059,67.171783",
	"24.829804,67.037544",
	"24.950607,66.835670",
	"25.027137,8.393555",
	"-2.054868,34.189453",
	"25.050570,67.009735",
	"25.191657,66.834984",
	"24.927578,66.989136",
	"24.952772,67.054882",
}

// newTestTree inserts "lat,lon" strings with ids "1", "2", ...
func newTestTree(t testing.TB, coordinates []string) *Tree[string, any] {
	t.Helper()

	tree := New[string, any]()
	for i, c := range coordinates {
		parts := strings.Split(c, ",")
		require.Len(t, parts, 2, "incorrect geo data provided: %q", c)

		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		require.NoError(t, err)
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		require.NoError(t, err)

		p, err := geo.NewPoint(lat, lon)
		require.NoError(t, err)
		require.NoError(t, tree.Insert(NewRecord[string, any](strconv.Itoa(i+1), p, nil)))
	}
	return tree
}

func ids[K comparable, V any](records []Record[K, V]) []K {
	out := make([]K, len(records))
	for i, r := range records {
		out[i] = r.ID()
	}
	return out
}

func sortedIDs(records []Record[string, int]) []string {
	out := ids(records)
	sort.Strings(out)
	return out
}

// randomRecords generates n records at mid latitudes, where degree-based
// pruning never drops a point the haversine distance would keep.
func randomRecords(r *rand.Rand, n int) []Record[string, int] {
	records := make([]Record[string, int], n)
	for i := range records {
		p := geo.MustPoint(r.Float64()*120-60, r.Float64()*360-180)
		records[i] = NewRecord(fmt.Sprintf("point_%d", i), p, i)
	}
	return records
}

// preOrderDepths lists "id@depth" for every node.
func preOrderDepths[K comparable, V any](tree *Tree[K, V]) []string {
	var out []string
	tree.preOrder(func(n *node[K, V]) {
		out = append(out, fmt.Sprintf("%v@%d", n.record.id, n.depth))
	})
	return out
}

// checkLinks verifies parent back-references and that every node is indexed under its own id.
func checkLinks[K comparable, V any](t *testing.T, tree *Tree[K, V]) {
	t.Helper()

	count := 0
	tree.preOrder(func(n *node[K, V]) {
		count++
		if n == tree.root {
			require.Nil(t, n.parent, "root must not have a parent")
		}
		for _, c := range []*node[K, V]{n.left, n.right} {
			if c != nil {
				require.Same(t, n, c.parent, "child %v has wrong parent", c.record.id)
			}
		}
		indexed, ok := tree.index.get(n.record.id)
		require.True(t, ok, "node %v is not indexed", n.record.id)
		require.Same(t, n, indexed, "index entry of %v points at another node", n.record.id)
	})
	require.Equal(t, tree.index.size(), count, "index size and node count differ")
}
