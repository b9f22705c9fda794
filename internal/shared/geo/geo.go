package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for every distance in the
// service.
const EarthRadiusKm = 6371.0

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// HaversineKm returns the great-circle distance between two coordinates in
// kilometres. Non-finite inputs propagate as NaN.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	sinDLat := math.Sin(dLat / 2)
	sinDLng := math.Sin(dLng / 2)

	h := sinDLat*sinDLat + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*sinDLng*sinDLng
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
