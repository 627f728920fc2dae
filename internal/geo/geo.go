// Package geo holds the great-circle helpers used for locality scoring.
// Distances are in kilometres rounded to one decimal, which is accurate to
// roughly half a percent at city scale.
package geo

import (
	"math"
	"sort"
)

const earthRadiusKm = 6371.0

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Named is anything with a position that can be ranked by distance.
type Named interface {
	Label() string
	Position() Coordinates
}

type Ranked[T Named] struct {
	Item       T
	DistanceKm float64
}

// DistanceKm returns the Haversine distance between a and b.
func DistanceKm(a, b Coordinates) float64 {
	if a == b {
		return 0
	}

	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return Round1(earthRadiusKm * c)
}

func WithinRadius(point, center Coordinates, radiusKm float64) bool {
	return DistanceKm(point, center) <= radiusKm
}

// Bearing is the initial heading from a to b in degrees, 0 = north,
// normalised to [0, 360).
func Bearing(a, b Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)

	deg := math.Mod(toDegrees(math.Atan2(y, x))+360, 360)
	if deg >= 360 {
		deg = 0
	}
	return deg
}

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func CompassDirection(bearing float64) string {
	b := math.Mod(bearing, 360)
	if b < 0 {
		b += 360
	}
	return compassPoints[int(math.Round(b/45))%8]
}

// Nearest does a linear scan. ok is false when candidates is empty.
func Nearest[T Named](from Coordinates, candidates []T) (nearest Ranked[T], ok bool) {
	best := math.Inf(1)
	for _, c := range candidates {
		d := DistanceKm(from, c.Position())
		if d < best {
			best = d
			nearest = Ranked[T]{Item: c, DistanceKm: d}
			ok = true
		}
	}
	return nearest, ok
}

// SortByDistance returns candidates ordered nearest first. Ties keep input
// order.
func SortByDistance[T Named](from Coordinates, candidates []T) []Ranked[T] {
	out := make([]Ranked[T], len(candidates))
	for i, c := range candidates {
		out[i] = Ranked[T]{Item: c, DistanceKm: DistanceKm(from, c.Position())}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }
