// Package geo provides the geometry the spatial indexes are built on:
// validated latitude/longitude points, axis-aligned bounding boxes and the
// haversine great-circle distance.
package geo

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the root of every construction failure in this package.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidLatitude is returned for a latitude outside [-90, 90].
	ErrInvalidLatitude = fmt.Errorf("%w: not a valid latitude value", ErrValidation)

	// ErrInvalidLongitude is returned for a longitude outside [-180, 180].
	ErrInvalidLongitude = fmt.Errorf("%w: not a valid longitude value", ErrValidation)
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Axis selects one of the two coordinates of a Point.
type Axis int

const (
	Latitude Axis = iota
	Longitude
)

// AxisAt returns the axis a KD-tree discriminates on at the given depth.
func AxisAt(depth int) Axis {
	return Axis(depth % 2)
}

// Other returns the opposite axis.
func (a Axis) Other() Axis {
	return 1 - a
}

func (a Axis) String() string {
	if a == Latitude {
		return "latitude"
	}
	return "longitude"
}

// Point is an immutable geographic coordinate in degrees.
type Point struct {
	lat float64
	lon float64
}

// NewPoint validates the coordinates and returns a Point.
func NewPoint(lat, lon float64) (Point, error) {
	// NaN fails both comparisons, so test for the valid range instead.
	if !(lat >= MinLatitude && lat <= MaxLatitude) {
		return Point{}, fmt.Errorf("%w: %v", ErrInvalidLatitude, lat)
	}
	if !(lon >= MinLongitude && lon <= MaxLongitude) {
		return Point{}, fmt.Errorf("%w: %v", ErrInvalidLongitude, lon)
	}
	return Point{lat: lat, lon: lon}, nil
}

// MustPoint is like NewPoint but panics on invalid input.
// Intended for literals in tests and examples.
func MustPoint(lat, lon float64) Point {
	p, err := NewPoint(lat, lon)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Point) Lat() float64 { return p.lat }
func (p Point) Lon() float64 { return p.lon }

// Coord returns the coordinate on the given axis.
func (p Point) Coord(a Axis) float64 {
	if a == Latitude {
		return p.lat
	}
	return p.lon
}

// Equal reports whether both coordinates match exactly.
func (p Point) Equal(o Point) bool {
	return p.lat == o.lat && p.lon == o.lon
}

func (p Point) String() string {
	return fmt.Sprintf("(%.7f, %.7f)", p.lat, p.lon)
}
