package domain

import "math"

const earthRadiusKm = 6371.0

// Point is a WGS-84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// HaversineKm returns the great-circle distance in kilometres between
// two points, on a sphere of radius 6371 km.
func HaversineKm(from, to Point) float64 {
	dLat := degToRad(to.Lat - from.Lat)
	dLon := degToRad(to.Lon - from.Lon)

	rLat1 := degToRad(from.Lat)
	rLat2 := degToRad(to.Lat)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// ValidCoordinate reports whether lat/lon fall inside WGS-84 bounds.
func ValidCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
