package models

import "time"

// RateSource tags where an accepted land rate came from.
type RateSource string

const (
	SourceOracle           RateSource = "oracle"
	SourceBaselineGuard    RateSource = "baseline_guard"
	SourceBaselineFallback RateSource = "baseline_fallback"
	SourceCache            RateSource = "cache"
)

// RateObservation is one row of locality_search_history. Rows are append-only.
type RateObservation struct {
	ID         string     `json:"id"`
	Locality   string     `json:"locality"`
	Rate       float64    `json:"rate"`
	Source     RateSource `json:"source"`
	ObservedAt time.Time  `json:"observedAt"`
}

// LocalityBaseline is the materialized rolling statistic for a locality
// (locality_baselines). Rates are lakhs per cent.
type LocalityBaseline struct {
	Locality        string    `json:"locality"`
	MedianRate      float64   `json:"medianRate"`
	SampleSize      int       `json:"sampleSize"`
	StdDeviation    float64   `json:"stdDeviation"`
	ConfidenceScore float64   `json:"confidenceScore"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// CachedRate is the single search_cache row for a locality. Its TTL is
// derived from the baseline on every read and is never stored.
type CachedRate struct {
	Locality string    `json:"locality"`
	Rate     float64   `json:"rate"`
	CachedAt time.Time `json:"cachedAt"`
}
