package kdtree

import "github.com/1F47E/geo-index-kdtree/pkg/geo"

// Record is an indexed value: a caller id, a caller payload and a location.
// The id and point are fixed at construction; the payload is replaced through Tree.Update.
type Record[K comparable, V any] struct {
	id      K
	payload V
	point   geo.Point
}

// NewRecord builds a record. The point is expected to be validated already (see geo.NewPoint).
func NewRecord[K comparable, V any](id K, point geo.Point, payload V) Record[K, V] {
	return Record[K, V]{id: id, payload: payload, point: point}
}

func (r Record[K, V]) ID() K { return r.id }
func (r Record[K, V]) Payload() V { return r.payload }
func (r Record[K, V]) Point() geo.Point { return r.point }
