package valuation

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/llm"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/locality"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/search/web"
)

// Oracle estimates the market land rate of a locality. It is an untrusted
// source; the engine checks its answer against the baseline.
type Oracle interface {
	EstimateRate(ctx context.Context, req OracleRequest) (*OracleEstimate, error)
}

type OracleRequest struct {
	Input           Input
	Tier            locality.Tier
	BeachDistanceKm float64
	Benchmarks      locality.Benchmarks
	Snippets        []web.SearchResult
}

const oracleSystemPrompt = `You are a senior real estate investment analyst and surveyor for Trivandrum (Thiruvananthapuram), Kerala.
You estimate the median asking land rate in Lakhs per cent from listing evidence.
Reply with a single JSON object and nothing else.`

// LLMOracle asks a chat model for the land rate.
type LLMOracle struct {
	completer llm.Completer
}

func NewLLMOracle(c llm.Completer) *LLMOracle {
	return &LLMOracle{completer: c}
}

func (o *LLMOracle) EstimateRate(ctx context.Context, req OracleRequest) (*OracleEstimate, error) {
	resp, err := o.completer.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: oracleSystemPrompt,
		UserPrompt:   BuildPrompt(req),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOracle, err)
	}

	est, err := DecodeEstimate(resp.Content)
	if err != nil {
		return nil, err
	}
	if est.LandRatePerCent <= 0 {
		return nil, fmt.Errorf("%w: response carried no land rate", ErrOracle)
	}
	return est, nil
}

// BuildPrompt renders the user prompt for one estimate.
func BuildPrompt(req OracleRequest) string {
	in := req.Input
	b := req.Benchmarks

	features := fmt.Sprintf("Road Access: %s", orUnknown(in.RoadAccess))
	if in.Kind == KindHouse {
		features += fmt.Sprintf(", Built Area: %.0f sq ft, Bedrooms: %d, Age: %s",
			in.BuiltAreaSqft, in.Bedrooms, orUnknown(in.AgeBand))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "INPUT DATA:\n")
	fmt.Fprintf(&sb, "- Type: %s\n", in.Kind)
	fmt.Fprintf(&sb, "- Locality: %s (tier: %s)\n", in.Locality, req.Tier)
	fmt.Fprintf(&sb, "- Land Size: %g cents\n", in.PlotAreaCents)
	fmt.Fprintf(&sb, "- Beach Distance: %.1f km\n", req.BeachDistanceKm)
	fmt.Fprintf(&sb, "- Specs: %s\n\n", features)

	fmt.Fprintf(&sb, "BENCHMARK RATES (Lakhs per cent):\n")
	fmt.Fprintf(&sb, "- Premium (Kowdiar, Sasthamangalam): %g\n", b.Premium)
	fmt.Fprintf(&sb, "- Tech hub (Kazhakuttom, Technopark): %g\n", b.TechHub)
	fmt.Fprintf(&sb, "- City average: %g\n", b.CityAvg)
	fmt.Fprintf(&sb, "- Suburb: %g\n\n", b.Suburb)

	if len(req.Snippets) > 0 {
		fmt.Fprintf(&sb, "LISTING EVIDENCE (most relevant first):\n")
		for i, s := range req.Snippets {
			fmt.Fprintf(&sb, "%d. %s (%s)", i+1, s.Title, s.URL)
			if s.Snippet != "" {
				fmt.Fprintf(&sb, ": %s", s.Snippet)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("No listing evidence was found; rely on the benchmarks and your market knowledge.\n\n")
	}

	sb.WriteString(`TASK:
1. Find the MEDIAN asking land rate R in Lakhs per cent for this locality. Round R to the nearest 0.25.
2. If this is a house, give a construction cost per sq ft in rupees (2800 standard, 3500 premium finish).
3. Summarise investment outlook and the locality's geospatial character.

RETURN JSON ONLY:
{
  "explanation": "Short textual summary.",
  "recommendation": "One sentence advice.",
  "breakdown": {
    "landRatePerCent": number,
    "structureRatePerSqFt": number
  },
  "investment": {
    "rentalYield": "string (e.g. 3.5%)",
    "appreciationForecast": "string (e.g. 8% Annually)",
    "demandTrend": "High" | "Moderate" | "Low",
    "marketSentiment": "string"
  },
  "geoSpatial": {
    "terrain": "string",
    "neighborhoodVibe": "string",
    "priceGradient": "string",
    "growthDrivers": ["string"],
    "microMarkets": [{ "name": "string", "priceLevel": "High/Med/Low", "description": "string" }],
    "marketDepth": [{ "id": 1, "size": number, "price": number, "type": "Premium" }]
  }
}
`)
	return sb.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
