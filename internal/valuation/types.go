package valuation

import (
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/baseline"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/listing"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/models"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/suitability"
)

type Kind string

const (
	KindPlot  Kind = "Plot"
	KindHouse Kind = "House"
)

// Input is one valuation request. Areas are in cents and square feet.
type Input struct {
	Kind          Kind    `json:"type"`
	Locality      string  `json:"locality"`
	PlotAreaCents float64 `json:"plotArea"`
	BuiltAreaSqft float64 `json:"builtArea"`
	Bedrooms      int     `json:"bedrooms"`
	AgeBand       string  `json:"propertyAge"`
	RoadAccess    string  `json:"roadWidth"`
	// BeachDistanceKm overrides the locality's default when set.
	BeachDistanceKm *float64 `json:"distanceToBeach,omitempty"`
}

// Result amounts are in lakhs unless a field says otherwise.
type Result struct {
	PriceRangeMin  float64             `json:"minPrice"`
	PriceRangeMax  float64             `json:"maxPrice"`
	Currency       string              `json:"currency"`
	LandValue      float64             `json:"estimatedLandValue"`
	StructureValue float64             `json:"estimatedStructureValue"`
	Breakdown      Breakdown           `json:"breakdown"`
	Confidence     baseline.Confidence `json:"confidence"`
	Suitability    suitability.Metrics `json:"nriMetrics"`
	Markers        []listing.Marker    `json:"markers"`
	Sources        []listing.Source    `json:"sources"`
	Investment     *Investment         `json:"investment,omitempty"`
	GeoSpatial     *GeoSpatial         `json:"geoSpatial,omitempty"`
	Benchmarks     []BenchmarkPoint    `json:"benchmarks"`
	Explanation    string              `json:"explanation"`
	Recommendation string              `json:"recommendation"`
	RateSource     models.RateSource   `json:"rateSource"`
	// Degraded is set when the oracle failed and the baseline median was used.
	Degraded bool `json:"degraded"`
}

type Breakdown struct {
	LandRatePerCent                  float64 `json:"landRatePerCent"`
	LandRateMin                      float64 `json:"landRateMin"`
	LandRateMax                      float64 `json:"landRateMax"`
	LandTotal                        float64 `json:"landTotal"`
	StructureRatePerSqft             float64 `json:"structureRatePerSqFt"` // rupees
	StructureTotalBeforeDepreciation float64 `json:"structureTotalBeforeDepreciation"`
	DepreciationPercentage           float64 `json:"depreciationPercentage"`
	FinalStructureValue              float64 `json:"finalStructureValue"`
	RoadAccessAdjustment             string  `json:"roadAccessAdjustment"`
}

type Investment struct {
	RentalYield          string `json:"rentalYield"`
	AppreciationForecast string `json:"appreciationForecast"`
	DemandTrend          string `json:"demandTrend"`
	MarketSentiment      string `json:"marketSentiment"`
}

type MicroMarket struct {
	Name        string `json:"name"`
	PriceLevel  string `json:"priceLevel"`
	Description string `json:"description"`
}

// Comparable is one simulated listing for the market depth chart.
type Comparable struct {
	ID    int     `json:"id"`
	Size  float64 `json:"size"`
	Price float64 `json:"price"`
	Type  string  `json:"type"`
}

type GeoSpatial struct {
	Terrain          string        `json:"terrain"`
	NeighborhoodVibe string        `json:"neighborhoodVibe"`
	PriceGradient    string        `json:"priceGradient"`
	GrowthDrivers    []string      `json:"growthDrivers"`
	MicroMarkets     []MicroMarket `json:"microMarkets"`
	MarketDepth      []Comparable  `json:"marketDepth"`
}

// BenchmarkPoint places a rate on the city-wide reference scale.
type BenchmarkPoint struct {
	Name    string  `json:"name"`
	Rate    float64 `json:"rate"`
	Current bool    `json:"current,omitempty"`
}
