// Package suitability scores a plot for NRI buyers and villa developers from
// static locality data. Everything here is deterministic.
package suitability

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/geo"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/locality"
)

const MaxScore = 10.0

// Used when a locality has no coordinates on record.
var (
	fallbackAmenities = Amenities{AirportKm: 15, MallKm: 10, TechparkKm: 12}
	fallbackSocial    = SocialInfra{
		NearestSchool:   Facility{Name: "Local School", DistanceKm: 2.5},
		NearestHospital: Facility{Name: "Community Hospital", DistanceKm: 3.0},
	}
)

var (
	tierPoints = map[locality.Tier]float64{
		locality.TierPremium: 3,
		locality.TierTech:    2.5,
		locality.TierCity:    2,
		locality.TierSuburb:  1,
	}
	villaMinCents = map[locality.Tier]float64{
		locality.TierPremium: 5,
		locality.TierTech:    4,
		locality.TierCity:    4,
		locality.TierSuburb:  3,
	}
)

type Facility struct {
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance"`
}

type SocialInfra struct {
	NearestSchool   Facility `json:"nearestSchool"`
	NearestHospital Facility `json:"nearestHospital"`
}

type Amenities struct {
	AirportKm  float64 `json:"airportDist"`
	MallKm     float64 `json:"mallDist"`
	TechparkKm float64 `json:"techparkDist"`
}

type Metrics struct {
	SuitabilityScore       float64     `json:"suitabilityScore"`
	AirportDistKm          float64     `json:"airportDist"`
	MallDistKm             float64     `json:"mallDist"`
	TechparkDistKm         float64     `json:"techparkDist"`
	AirportDirection       string      `json:"airportDirection,omitempty"`
	IsVillaFeasible        bool        `json:"isVillaFeasible"`
	VillaFeasibilityReason string      `json:"villaFeasibilityReason"`
	SocialInfra            SocialInfra `json:"socialInfra"`
}

func airportPoints(km float64) float64 {
	switch {
	case km < 10:
		return 3
	case km < 20:
		return 2
	default:
		return 1
	}
}

func sizePoints(cents float64) float64 {
	switch {
	case cents >= 5:
		return 2
	case cents >= 3:
		return 1
	default:
		return 0
	}
}

func beachPoints(km float64) float64 {
	switch {
	case km < 5:
		return 2
	case km < 10:
		return 1
	default:
		return 0
	}
}

// Score sums the airport, tier, plot-size and beach components and clamps
// the total to [0, 10] at one decimal.
func Score(name string, plotAreaCents, beachDistanceKm float64) float64 {
	total := airportPoints(GetAmenities(name).AirportKm) +
		tierPoints[locality.TierOf(name)] +
		sizePoints(plotAreaCents) +
		beachPoints(beachDistanceKm)

	return geo.Round1(math.Max(0, math.Min(MaxScore, total)))
}

func GetAmenities(name string) Amenities {
	p, ok := locality.Lookup(name)
	if !ok {
		return fallbackAmenities
	}
	return Amenities{
		AirportKm:  geo.DistanceKm(p.Coords, locality.Airport.Coords),
		MallKm:     geo.DistanceKm(p.Coords, locality.LuluMall.Coords),
		TechparkKm: geo.DistanceKm(p.Coords, locality.Technopark.Coords),
	}
}

// VillaFeasibility gates villa development on a per-tier minimum plot size.
func VillaFeasibility(plotAreaCents float64, name string) (bool, string) {
	tier := locality.TierOf(name)
	required := villaMinCents[tier]
	cents := strconv.FormatFloat(plotAreaCents, 'f', -1, 64)

	if plotAreaCents < required {
		return false, fmt.Sprintf("Plot size (%s cents) below recommended minimum of %s cents for %s. Consider increasing land area or opting for compact design.",
			cents, strconv.FormatFloat(required, 'f', -1, 64), name)
	}

	switch tier {
	case locality.TierPremium:
		return true, fmt.Sprintf("Excellent for luxury villa development in %s's premium market. Plot size sufficient for high-end construction.", name)
	case locality.TierTech:
		return true, fmt.Sprintf("Good for modern villa development. High demand from IT professionals in %s.", name)
	default:
		return true, fmt.Sprintf("Suitable for villa construction. %s cents provides adequate space for residential development.", cents)
	}
}

func NearestSocialInfra(name string) SocialInfra {
	p, ok := locality.Lookup(name)
	if !ok {
		return fallbackSocial
	}

	out := fallbackSocial
	if s, ok := geo.Nearest(p.Coords, locality.Schools()); ok {
		out.NearestSchool = Facility{Name: s.Item.Name, DistanceKm: geo.Round1(s.DistanceKm)}
	}
	if h, ok := geo.Nearest(p.Coords, locality.Hospitals()); ok {
		out.NearestHospital = Facility{Name: h.Item.Name, DistanceKm: geo.Round1(h.DistanceKm)}
	}
	return out
}

// Evaluate assembles every metric for one plot.
func Evaluate(name string, plotAreaCents, beachDistanceKm float64) Metrics {
	amenities := GetAmenities(name)
	feasible, reason := VillaFeasibility(plotAreaCents, name)

	m := Metrics{
		SuitabilityScore:       Score(name, plotAreaCents, beachDistanceKm),
		AirportDistKm:          geo.Round1(amenities.AirportKm),
		MallDistKm:             geo.Round1(amenities.MallKm),
		TechparkDistKm:         geo.Round1(amenities.TechparkKm),
		IsVillaFeasible:        feasible,
		VillaFeasibilityReason: reason,
		SocialInfra:            NearestSocialInfra(name),
	}
	if p, ok := locality.Lookup(name); ok {
		m.AirportDirection = geo.CompassDirection(geo.Bearing(p.Coords, locality.Airport.Coords))
	}
	return m
}
