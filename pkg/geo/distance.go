package geo

import "math"

// EarthRadiusKm is the mean earth radius used by Distance.
const EarthRadiusKm = 6371.0

// Distance returns the haversine great-circle distance between a and b in kilometers.
func Distance(a, b Point) float64 {
	return DistanceCoords(a.lat, a.lon, b.lat, b.lon)
}

// DistanceCoords is Distance over raw degrees.
func DistanceCoords(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// KmToDegrees converts a distance to degrees of latitude on the mean sphere.
func KmToDegrees(km float64) float64 {
	return (km / EarthRadiusKm) * (180 / math.Pi)
}
