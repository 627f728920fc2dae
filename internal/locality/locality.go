// Package locality is the static reference data for Trivandrum: locality
// profiles, landmarks, schools, hospitals and benchmark land rates. All of it
// is immutable for the life of the process.
package locality

import (
	"sort"
	"strings"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/geo"
)

type Tier string

const (
	TierPremium Tier = "Premium"
	TierTech    Tier = "Tech"
	TierCity    Tier = "City"
	TierSuburb  Tier = "Suburb"
)

type Profile struct {
	Name            string          `json:"name"`
	Coords          geo.Coordinates `json:"coords"`
	Tier            Tier            `json:"tier"`
	BeachDistanceKm float64         `json:"beachDistanceKm"`
}

type Place struct {
	Name   string          `json:"name"`
	Coords geo.Coordinates `json:"coords"`
}

func (p Place) Label() string             { return p.Name }
func (p Place) Position() geo.Coordinates { return p.Coords }

var (
	Airport        = Place{Name: "Trivandrum International Airport (TRV)", Coords: geo.Coordinates{Lat: 8.4821, Lng: 76.9200}}
	LuluMall       = Place{Name: "Lulu Mall Trivandrum", Coords: geo.Coordinates{Lat: 8.5132, Lng: 76.9506}}
	Technopark     = Place{Name: "Technopark Phase 1", Coords: geo.Coordinates{Lat: 8.5473, Lng: 76.9012}}
	RailwayStation = Place{Name: "Trivandrum Central Railway Station", Coords: geo.Coordinates{Lat: 8.4901, Lng: 76.9534}}
	MedicalCollege = Place{Name: "Government Medical College Hospital", Coords: geo.Coordinates{Lat: 8.5301, Lng: 76.9445}}
	SCTIMST        = Place{Name: "SCTIMST Hospital", Coords: geo.Coordinates{Lat: 8.5345, Lng: 76.9712}}
)

// Benchmarks are reference land rates in lakhs per cent.
type Benchmarks struct {
	Premium float64 `json:"premium"`
	TechHub float64 `json:"techHub"`
	CityAvg float64 `json:"cityAvg"`
	Suburb  float64 `json:"suburb"`
}

func DefaultBenchmarks() Benchmarks {
	return Benchmarks{Premium: 28.0, TechHub: 15.0, CityAvg: 10.0, Suburb: 6.0}
}

// ForTier returns the benchmark rate that corresponds to a locality tier.
func (b Benchmarks) ForTier(t Tier) float64 {
	switch t {
	case TierPremium:
		return b.Premium
	case TierTech:
		return b.TechHub
	case TierCity:
		return b.CityAvg
	default:
		return b.Suburb
	}
}

var byKey = func() map[string]Profile {
	m := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		m[key(p.Name)] = p
	}
	return m
}()

func key(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Lookup matches names case-insensitively and ignores extra whitespace.
func Lookup(name string) (Profile, bool) {
	p, ok := byKey[key(name)]
	return p, ok
}

// TierOf defaults unknown localities to Suburb.
func TierOf(name string) Tier {
	if p, ok := Lookup(name); ok {
		return p.Tier
	}
	return TierSuburb
}

// All returns every profile sorted by name. The slice is a copy.
func All() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the canonical locality names, sorted.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return names
}

func Landmarks() []Place {
	return []Place{Airport, LuluMall, Technopark, RailwayStation, MedicalCollege, SCTIMST}
}

func Schools() []Place {
	out := make([]Place, len(schools))
	copy(out, schools)
	return out
}

func Hospitals() []Place {
	out := make([]Place, len(hospitals))
	copy(out, hospitals)
	return out
}
