package baseline

import (
	"math"
	"time"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/models"
)

type Level string

const (
	LevelHigh   Level = "High"
	LevelMedium Level = "Medium"
	LevelLow    Level = "Low"
)

const (
	baseScore      = 50.0
	thinSampleCap  = 55.0
	thinSampleSize = 5
)

type Confidence struct {
	Score       float64    `json:"score"`
	Level       Level      `json:"level"`
	SampleSize  int        `json:"sampleSize"`
	VariancePct float64    `json:"variancePct"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// Score rates how far a baseline can be trusted, 0-100. Fewer than five
// samples never score above 55 whatever their spread.
func Score(sampleSize int, variancePct float64) Confidence {
	score := baseScore

	switch {
	case sampleSize >= 15:
		score += 30
	case sampleSize >= 5:
		score += 20
	case sampleSize >= 3:
		score += 10
	default:
		score += 5
	}

	if sampleSize >= 3 {
		switch {
		case variancePct <= 10:
			score += 20
		case variancePct <= 20:
			score += 10
		default:
			score -= 10
		}
	}

	if sampleSize < thinSampleSize {
		score = math.Min(score, thinSampleCap)
	}
	score = math.Max(0, math.Min(100, score))

	return Confidence{
		Score:       score,
		Level:       levelFor(score),
		SampleSize:  sampleSize,
		VariancePct: variancePct,
	}
}

func levelFor(score float64) Level {
	switch {
	case score >= 80:
		return LevelHigh
	case score >= 60:
		return LevelMedium
	default:
		return LevelLow
	}
}

// VariancePct is the coefficient of variation of a baseline in percent.
func VariancePct(b *models.LocalityBaseline) float64 {
	if b == nil || b.MedianRate <= 0 {
		return 0
	}
	return b.StdDeviation / b.MedianRate * 100
}

// ForBaseline scores a materialized baseline. A nil baseline is the
// no-history case: zero samples, low confidence.
func ForBaseline(b *models.LocalityBaseline) Confidence {
	if b == nil {
		return Score(0, 0)
	}
	c := Score(b.SampleSize, VariancePct(b))
	updated := b.LastUpdated
	c.LastUpdated = &updated
	return c
}
