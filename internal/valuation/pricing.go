package valuation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/geo"
)

const (
	bandLow  = 0.90
	bandHigh = 1.10

	depreciationOld    = 0.35
	depreciationResale = 0.15

	roadNarrow = 0.90
	roadWide   = 1.05

	rupeesPerLakh = 100000.0
)

var oldWordRe = regexp.MustCompile(`\bold\b`)

// NormalizeToLakhs converts a raw rupee amount to lakhs. Values at or below
// 10000 are taken to be lakhs already.
func NormalizeToLakhs(v float64) float64 {
	if v > 10000 {
		return v / rupeesPerLakh
	}
	return v
}

// PricingInput is everything the deterministic model needs. LandRate is in
// lakhs per cent and ConstructionRate in rupees per sqft.
type PricingInput struct {
	Kind             Kind
	PlotAreaCents    float64
	BuiltAreaSqft    float64
	AgeBand          string
	RoadAccess       string
	LandRate         float64
	ConstructionRate float64
}

type Pricing struct {
	Min                         float64
	Max                         float64
	LandValue                   float64
	LandMin                     float64
	LandMax                     float64
	StructureBeforeDepreciation float64
	StructureValue              float64
	Depreciation                float64
	RoadFactor                  float64
}

// Price runs the land, structure, depreciation and road model.
func Price(in PricingInput) Pricing {
	p := Pricing{
		LandValue:  in.LandRate * in.PlotAreaCents,
		LandMin:    in.LandRate * bandLow * in.PlotAreaCents,
		LandMax:    in.LandRate * bandHigh * in.PlotAreaCents,
		RoadFactor: RoadFactor(in.RoadAccess),
	}

	if in.Kind == KindHouse && in.BuiltAreaSqft > 0 {
		p.Depreciation = Depreciation(in.AgeBand)
		p.StructureBeforeDepreciation = in.BuiltAreaSqft * in.ConstructionRate / rupeesPerLakh
		p.StructureValue = p.StructureBeforeDepreciation * (1 - p.Depreciation)
	}

	p.Min = geo.Round2((p.LandMin + p.StructureValue) * p.RoadFactor)
	p.Max = geo.Round2((p.LandMax + p.StructureValue) * p.RoadFactor)
	p.LandValue = geo.Round2(p.LandValue)
	p.LandMin = geo.Round2(p.LandMin)
	p.LandMax = geo.Round2(p.LandMax)
	p.StructureBeforeDepreciation = geo.Round2(p.StructureBeforeDepreciation)
	p.StructureValue = geo.Round2(p.StructureValue)
	return p
}

// Depreciation maps an age band to the fraction written off the structure.
// The under-ten band is matched first so "< 10 years old" stays resale.
// Unrecognised bands depreciate nothing.
func Depreciation(ageBand string) float64 {
	lower := strings.ToLower(ageBand)
	s := strings.ReplaceAll(lower, " ", "")
	switch {
	case strings.Contains(s, "<10"), strings.Contains(s, "lessthan10"),
		strings.Contains(s, "resale"):
		return depreciationResale
	case strings.Contains(s, ">10"), strings.Contains(s, "morethan10"),
		strings.Contains(s, "over10"), oldWordRe.MatchString(lower):
		return depreciationOld
	default:
		return 0
	}
}

func RoadFactor(roadAccess string) float64 {
	s := strings.ToLower(roadAccess)
	switch {
	case strings.Contains(s, "narrow"):
		return roadNarrow
	case strings.Contains(s, "wide"), strings.Contains(s, "lorry"):
		return roadWide
	default:
		return 1.0
	}
}

// RoadAdjustmentLabel renders a road factor as a signed percentage.
func RoadAdjustmentLabel(factor float64) string {
	switch {
	case factor < 1:
		return "-" + trimPct((1-factor)*100)
	case factor > 1:
		return "+" + trimPct((factor-1)*100)
	default:
		return "0%"
	}
}

func trimPct(v float64) string {
	return strconv.FormatFloat(geo.Round2(v), 'f', -1, 64) + "%"
}
