package valuation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	defaultExplanation    = "Estimation based on market trends."
	defaultRecommendation = "N/A"
	defaultRoadAdjustment = "0%"
)

var numberRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// OracleEstimate is the typed view of an oracle response. Monetary amounts
// are in lakhs; ConstructionRatePerSqft is in rupees.
type OracleEstimate struct {
	LandRatePerCent         float64
	ConstructionRatePerSqft float64
	MinPrice                float64
	MaxPrice                float64
	LandValue               float64
	StructureValue          float64
	RoadAccessAdjustment    string
	Explanation             string
	Recommendation          string
	Investment              *Investment
	GeoSpatial              *GeoSpatial
}

// ExtractJSONObject returns the first balanced {...} block in text. Braces
// inside JSON strings do not count.
func ExtractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// DecodeEstimate parses an oracle reply. Missing or malformed fields fall
// back to defaults; only a reply without a parseable object is an error.
// A zero land rate is returned as is and left to the caller to judge.
func DecodeEstimate(text string) (*OracleEstimate, error) {
	block, ok := ExtractJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in response", ErrOracle)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrOracle, err)
	}

	breakdown := asMap(raw["breakdown"])

	est := &OracleEstimate{
		LandRatePerCent: NormalizeToLakhs(firstPositive(
			breakdown["landRatePerCent"], raw["landRatePerCent"], raw["landRate"],
		)),
		ConstructionRatePerSqft: firstPositive(
			breakdown["structureRatePerSqFt"], raw["constructionRatePerSqFt"], raw["structureRatePerSqFt"],
		),
		MinPrice:             NormalizeToLakhs(asFloat(raw["minPrice"])),
		MaxPrice:             NormalizeToLakhs(asFloat(raw["maxPrice"])),
		LandValue:            NormalizeToLakhs(asFloat(raw["estimatedLandValue"])),
		StructureValue:       NormalizeToLakhs(asFloat(raw["estimatedStructureValue"])),
		RoadAccessAdjustment: asString(breakdown["roadAccessAdjustment"], defaultRoadAdjustment),
		Explanation:          asString(raw["explanation"], defaultExplanation),
		Recommendation:       asString(raw["recommendation"], defaultRecommendation),
	}

	if inv := asMap(raw["investment"]); inv != nil {
		est.Investment = &Investment{
			RentalYield:          asString(inv["rentalYield"], ""),
			AppreciationForecast: asString(inv["appreciationForecast"], ""),
			DemandTrend:          asString(inv["demandTrend"], ""),
			MarketSentiment:      asString(inv["marketSentiment"], ""),
		}
	}

	if gs := asMap(raw["geoSpatial"]); gs != nil {
		est.GeoSpatial = decodeGeoSpatial(gs)
	}

	return est, nil
}

func decodeGeoSpatial(m map[string]any) *GeoSpatial {
	g := &GeoSpatial{
		Terrain:          asString(m["terrain"], ""),
		NeighborhoodVibe: asString(m["neighborhoodVibe"], ""),
		PriceGradient:    asString(m["priceGradient"], ""),
		GrowthDrivers:    asStrings(m["growthDrivers"]),
	}

	for _, item := range asSlice(m["microMarkets"]) {
		mm := asMap(item)
		if mm == nil {
			continue
		}
		g.MicroMarkets = append(g.MicroMarkets, MicroMarket{
			Name:        asString(mm["name"], ""),
			PriceLevel:  asString(mm["priceLevel"], ""),
			Description: asString(mm["description"], ""),
		})
	}

	for i, item := range asSlice(m["marketDepth"]) {
		c := asMap(item)
		if c == nil {
			continue
		}
		id := int(asFloat(c["id"]))
		if id == 0 {
			id = i + 1
		}
		g.MarketDepth = append(g.MarketDepth, Comparable{
			ID:    id,
			Size:  asFloat(c["size"]),
			Price: NormalizeToLakhs(asFloat(c["price"])),
			Type:  asString(c["type"], ""),
		})
	}
	return g
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// asFloat reads numbers and numeric strings such as "12.5 Lakhs" or
// "2,800". Anything else is zero.
func asFloat(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		m := numberRe.FindString(strings.ReplaceAll(x, ",", ""))
		if m == "" {
			return 0
		}
		f, _ = strconv.ParseFloat(m, 64)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func firstPositive(vs ...any) float64 {
	for _, v := range vs {
		if f := asFloat(v); f > 0 {
			return f
		}
	}
	return 0
}

func asString(v any, def string) string {
	switch x := v.(type) {
	case string:
		if s := strings.TrimSpace(x); s != "" {
			return s
		}
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return def
}

func asStrings(v any) []string {
	var out []string
	for _, item := range asSlice(v) {
		if s := asString(item, ""); s != "" {
			out = append(out, s)
		}
	}
	return out
}
