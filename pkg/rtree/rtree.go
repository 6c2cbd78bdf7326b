// Package rtree wraps an R-tree (github.com/dhconnelly/rtreego) behind the
// same geometry as the KD-tree so the two can be compared: it serves as the
// reference index in tests and as the baseline in benchmarks.
package rtree

import (
	"fmt"
	"math"
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/1F47E/geo-index-kdtree/pkg/geo"
)

const (
	tolerance   = 1e-9
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

// Entry is an indexed id and its location.
type Entry struct {
	ID    string
	Point geo.Point
}

// spatialEntry wraps an Entry to implement rtreego.Spatial.
type spatialEntry struct {
	Entry
	rect rtreego.Rect
}

func (se *spatialEntry) Bounds() rtreego.Rect {
	return se.rect
}

// Index is a thread-safe R-tree over geographic points keyed by id.
type Index struct {
	tree  *rtreego.Rtree
	items map[string]*spatialEntry
	mu    sync.RWMutex
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		tree:  rtreego.NewTree(dimensions, minChildren, maxChildren),
		items: make(map[string]*spatialEntry),
	}
}

// Insert adds or replaces the entry for id.
func (x *Index) Insert(id string, p geo.Point) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if old, ok := x.items[id]; ok {
		x.tree.Delete(old)
	}
	item := &spatialEntry{
		Entry: Entry{ID: id, Point: p},
		rect:  rtreego.Point{p.Lat(), p.Lon()}.ToRect(tolerance),
	}
	x.tree.Insert(item)
	x.items[id] = item
}

// Delete removes id. It reports whether the id was present.
func (x *Index) Delete(id string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	item, ok := x.items[id]
	if !ok {
		return false
	}
	delete(x.items, id)
	return x.tree.Delete(item)
}

// SearchBox returns all entries inside box, bounds inclusive.
func (x *Index) SearchBox(box geo.BoundingBox) ([]Entry, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	lower, upper := box.Lower(), box.Upper()
	bounds, err := rtreego.NewRectFromPoints(
		rtreego.Point{lower.Lat(), lower.Lon()},
		rtreego.Point{upper.Lat(), upper.Lon()},
	)
	if err != nil {
		return nil, fmt.Errorf("invalid bounding box: %w", err)
	}

	results := x.tree.SearchIntersect(bounds)

	// The stored rects are padded by tolerance, so filter on the exact point.
	entries := make([]Entry, 0, len(results))
	for _, result := range results {
		item, ok := result.(*spatialEntry)
		if !ok {
			continue
		}
		if box.Contains(item.Point) {
			entries = append(entries, item.Entry)
		}
	}
	return entries, nil
}

// SearchRadius returns all entries within radiusKm of center.
func (x *Index) SearchRadius(center geo.Point, radiusKm float64) ([]Entry, error) {
	if radiusKm < 0 {
		return nil, fmt.Errorf("invalid radius search: negative radius %v", radiusKm)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	// Degree box around the center. The longitude half-width is the widest
	// point of the circle; when the circle reaches a pole it spans every meridian.
	dLat := geo.KmToDegrees(radiusKm)
	dLon := 360.0
	angle := radiusKm / geo.EarthRadiusKm
	if s := math.Sin(angle) / math.Cos(center.Lat()*math.Pi/180); angle < math.Pi/2 && s < 1 {
		dLon = math.Asin(s) * 180 / math.Pi
	}

	bounds, err := rtreego.NewRectFromPoints(
		rtreego.Point{center.Lat() - dLat, center.Lon() - dLon},
		rtreego.Point{center.Lat() + dLat, center.Lon() + dLon},
	)
	if err != nil {
		return nil, fmt.Errorf("invalid radius search: %w", err)
	}

	results := x.tree.SearchIntersect(bounds)

	entries := make([]Entry, 0, len(results))
	for _, result := range results {
		item, ok := result.(*spatialEntry)
		if !ok {
			continue
		}
		if geo.Distance(item.Point, center) <= radiusKm {
			entries = append(entries, item.Entry)
		}
	}
	return entries, nil
}

// Size returns the number of indexed entries.
func (x *Index) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return len(x.items)
}
