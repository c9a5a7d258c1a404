// Package geo has the small amount of geodesy the attendance check-in
// needs.
package geo

import "math"

const earthRadiusM = 6371000.0

// DistanceM returns the great-circle distance in meters between two
// WGS84 coordinates (haversine formula).
func DistanceM(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return earthRadiusM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// WithinRadius reports whether the point is within radiusM meters of the
// center.
func WithinRadius(centerLat, centerLng, lat, lng, radiusM float64) bool {
	return DistanceM(centerLat, centerLng, lat, lng) <= radiusM
}
