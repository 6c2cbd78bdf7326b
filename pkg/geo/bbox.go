package geo

import "fmt"

// ErrMissingCorner is returned when a bounding box is built without one of its corners.
var ErrMissingCorner = fmt.Errorf("%w: bounding box corner can not be nil", ErrValidation)

// BoundingBox is an axis-aligned rectangle in latitude/longitude space.
// Both bounds are inclusive on both axes.
type BoundingBox struct {
	lower Point
	upper Point
}

// NewBoundingBox returns a box spanning lower..upper. Both corners are mandatory.
func NewBoundingBox(lower, upper *Point) (BoundingBox, error) {
	if lower == nil {
		return BoundingBox{}, fmt.Errorf("lowerPoint: %w", ErrMissingCorner)
	}
	if upper == nil {
		return BoundingBox{}, fmt.Errorf("upperPoint: %w", ErrMissingCorner)
	}
	return BoundingBox{lower: *lower, upper: *upper}, nil
}

// BoxFromCoords validates both corners and builds a box from raw degrees.
func BoxFromCoords(minLat, minLon, maxLat, maxLon float64) (BoundingBox, error) {
	lower, err := NewPoint(minLat, minLon)
	if err != nil {
		return BoundingBox{}, fmt.Errorf("lower corner: %w", err)
	}
	upper, err := NewPoint(maxLat, maxLon)
	if err != nil {
		return BoundingBox{}, fmt.Errorf("upper corner: %w", err)
	}
	return BoundingBox{lower: lower, upper: upper}, nil
}

// World returns the box covering every valid point.
func World() BoundingBox {
	return BoundingBox{
		lower: Point{lat: MinLatitude, lon: MinLongitude},
		upper: Point{lat: MaxLatitude, lon: MaxLongitude},
	}
}

func (b BoundingBox) Lower() Point { return b.lower }
func (b BoundingBox) Upper() Point { return b.upper }

// Contains reports whether p lies inside the box. The corners are used as given:
// a box whose lower corner exceeds its upper corner on an axis contains nothing.
func (b BoundingBox) Contains(p Point) bool {
	return b.ContainsCoord(Latitude, p.lat) && b.ContainsCoord(Longitude, p.lon)
}

// ContainsCoord reports whether v lies within the box's span on one axis.
func (b BoundingBox) ContainsCoord(a Axis, v float64) bool {
	return v >= b.lower.Coord(a) && v <= b.upper.Coord(a)
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%s - %s]", b.lower, b.upper)
}
