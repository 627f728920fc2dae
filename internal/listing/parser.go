// Package listing turns search-result titles and URLs into property markers.
//
// Extraction is regex based and deliberately permissive: a result is kept
// when it carries a price, a size, or comes from a known listing site, even
// if nothing could be parsed from it.
package listing

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	SqftPerCent    = 435.6
	LakhsPerCrore  = 100.0
	markerIDOffset = 1000
)

type Tier string

const (
	TierPremium  Tier = "Premium"
	TierMidRange Tier = "Mid-Range"
	TierBudget   Tier = "Budget"
	TierUnknown  Tier = "Unknown"
)

// Source is one search hit.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"uri"`
}

type Marker struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Link           string   `json:"link"`
	EstimatedPrice *float64 `json:"estimatedPrice,omitempty"` // lakhs
	EstimatedSize  *float64 `json:"estimatedSize,omitempty"`  // cents
	Tier           Tier     `json:"type"`
}

var (
	priceRe       = regexp.MustCompile(`(?i)(?:₹|Rs\.?\s*|INR\s*)?(\d+(?:\.\d+)?)\s*(Cr|Crore|L|Lakh|Lakhs)`)
	sizeRe        = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(cent|cents|sqft|sq\.?\s*ft)`)
	listingSiteRe = regexp.MustCompile(`(?i)99acres|magicbricks|housing\.com|olx`)
)

// ParsePrice returns the first price token in text, in lakhs.
func ParsePrice(text string) (float64, bool) {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if strings.HasPrefix(strings.ToLower(m[2]), "cr") {
		return v * LakhsPerCrore, true
	}
	return v, true
}

// ParseSize returns the first area token in text, in cents.
func ParseSize(text string) (float64, bool) {
	m := sizeRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if strings.HasPrefix(strings.ToLower(m[2]), "cent") {
		return v, true
	}
	return v / SqftPerCent, true
}

func Classify(priceLakhs float64, hasPrice bool) Tier {
	switch {
	case !hasPrice || priceLakhs == 0:
		return TierUnknown
	case priceLakhs > 100:
		return TierPremium
	case priceLakhs > 40:
		return TierMidRange
	default:
		return TierBudget
	}
}

func IsListingSite(url string) bool {
	return listingSiteRe.MatchString(url)
}

// Parse extracts markers from sources. Title and URL are searched together
// and the first match of each pattern wins. A zero price or size counts as
// absent. Marker IDs are the source index plus 1000.
func Parse(sources []Source) []Marker {
	markers := make([]Marker, 0, len(sources))

	for i, src := range sources {
		text := src.Title + " " + src.URL

		price, hasPrice := ParsePrice(text)
		hasPrice = hasPrice && price != 0
		size, hasSize := ParseSize(text)
		hasSize = hasSize && size != 0

		if !hasPrice && !hasSize && !IsListingSite(src.URL) {
			continue
		}

		m := Marker{
			ID:    i + markerIDOffset,
			Title: src.Title,
			Link:  src.URL,
			Tier:  Classify(price, hasPrice),
		}
		if hasPrice {
			m.EstimatedPrice = &price
		}
		if hasSize {
			m.EstimatedSize = &size
		}
		markers = append(markers, m)
	}

	return markers
}
